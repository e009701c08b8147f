package main

import (
	"net/http"
	"os"
	"path/filepath"

	"barkbuddy/internal/client/api"
	"barkbuddy/internal/client/geo"
	"barkbuddy/internal/client/store"

	"github.com/spf13/cobra"
)

var dogsCmd = &cobra.Command{
	Use:   "dogs",
	Short: "List, add, edit and remove your dogs",
}

var dogsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every dog you catalogued",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// la vista se redibuja desde el store, no desde la respuesta
		unsubscribe := cli.store.Subscribe(func(st store.State) {
			if st.Status == store.StatusSucceeded {
				cli.view.Dogs("Dogs", st.Dogs)
			}
		})
		defer unsubscribe()
		return store.FetchDogs(cmd.Context(), cli.store, cli.client)
	},
}

var dogsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List only the dogs marked as yours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dogs, err := cli.client.MyDogs(cmd.Context())
		if err != nil {
			return err
		}
		cli.store.Dispatch(store.Action{Type: store.Set, Payload: dogs})
		cli.view.Dogs("My dogs", cli.store.State().Dogs)
		return nil
	},
}

var dogsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many dogs you catalogued",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.FetchCount(cmd.Context(), cli.store, cli.client); err != nil {
			return err
		}
		cli.view.Count(cli.store.State().Count)
		return nil
	},
}

var dogsShowCmd = &cobra.Command{
	Use:   "show DOG_ID",
	Short: "Show one dog",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := cli.client.GetDog(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cli.view.Dog(d)
		return nil
	},
}

var dogsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a dog (optionally with a photo and where you met it)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, img, err := dogInputFromFlags(cmd)
		if err != nil {
			return err
		}

		// la ubicación es opcional: si falla se avisa y se sigue sin coordenadas
		if loc := locatorFromFlags(cmd); loc != nil {
			c, ok, err := geo.Locate(cmd.Context(), loc, cli.profile.GeoTimeout())
			if ok {
				in.Latitude = api.Float(c.Latitude)
				in.Longitude = api.Float(c.Longitude)
			} else {
				cli.view.Warn(err.Error())
			}
		}

		d, err := store.AddDog(cmd.Context(), cli.store, cli.client, in, img)
		if err != nil {
			return err
		}
		cli.view.Success("dog created")
		cli.view.Dog(d)
		return nil
	},
}

var dogsUpdateCmd = &cobra.Command{
	Use:   "update DOG_ID",
	Short: "Change some fields of a dog",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, img, err := dogInputFromFlags(cmd)
		if err != nil {
			return err
		}
		d, err := store.UpdateDog(cmd.Context(), cli.store, cli.client, args[0], in, img)
		if err != nil {
			return err
		}
		cli.view.Success("dog updated")
		cli.view.Dog(d)
		return nil
	},
}

var dogsDeleteCmd = &cobra.Command{
	Use:   "delete DOG_ID",
	Short: "Delete a dog with its sightings and photo",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteDog(cmd.Context(), cli.store, cli.client, args[0]); err != nil {
			return err
		}
		cli.view.Success("dog deleted")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{dogsAddCmd, dogsUpdateCmd} {
		f := c.Flags()
		f.String("name", "", "name")
		f.Int("age", 0, "age in years")
		f.String("gender", "", "gender")
		f.String("color", "", "color")
		f.String("nickname", "", "nickname")
		f.String("owner", "", "owner")
		f.String("owner2", "", "second owner")
		f.String("breed", "", "breed, see: barkbuddy breeds --names")
		f.String("size", "", "xsmall|small|medium|large|xlarge")
		f.Bool("friendly", true, "is friendly")
		f.Bool("favorite", false, "mark as favorite")
		f.Bool("mine", false, "the dog is yours")
		f.String("neighborhood", "", "neighborhood")
		f.String("notes", "", "notes")
		f.String("image", "", "path to a photo")
	}
	dogsAddCmd.Flags().Float64("lat", 0, "latitude where you met the dog")
	dogsAddCmd.Flags().Float64("lng", 0, "longitude where you met the dog")
	dogsAddCmd.Flags().Bool("locate", false, "estimate where you are from your IP")
	_ = dogsAddCmd.MarkFlagRequired("name")
	dogsAddCmd.MarkFlagsRequiredTogether("lat", "lng")

	dogsCmd.AddCommand(dogsListCmd, dogsMineCmd, dogsCountCmd, dogsShowCmd, dogsAddCmd, dogsUpdateCmd, dogsDeleteCmd)
}

// dogInputFromFlags solo incluye los flags que el usuario pasó: en update, el resto no cambia.
func dogInputFromFlags(cmd *cobra.Command) (api.DogInput, *api.Image, error) {
	f := cmd.Flags()
	var in api.DogInput

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetBool(name)
		return &v
	}

	in.Name = str("name")
	in.Gender = str("gender")
	in.Color = str("color")
	in.Nickname = str("nickname")
	in.Owner = str("owner")
	in.Owner2 = str("owner2")
	in.Breed = str("breed")
	in.Size = str("size")
	in.Neighborhood = str("neighborhood")
	in.Notes = str("notes")
	in.IsFriendly = boolean("friendly")
	in.IsFavorite = boolean("favorite")
	in.IsOwner = boolean("mine")
	if f.Changed("age") {
		v, _ := f.GetInt("age")
		in.Age = &v
	}

	path, _ := f.GetString("image")
	if path == "" {
		return in, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return in, nil, err
	}
	return in, &api.Image{
		Filename:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

func locatorFromFlags(cmd *cobra.Command) geo.Locator {
	f := cmd.Flags()
	if f.Changed("lat") && f.Changed("lng") {
		lat, _ := f.GetFloat64("lat")
		lng, _ := f.GetFloat64("lng")
		return geo.Fixed{Latitude: lat, Longitude: lng}
	}
	if on, _ := f.GetBool("locate"); on {
		return geo.NewIPLocator(nil, cli.profile.Geo.LookupURL)
	}
	return nil
}
