package main

import (
	"barkbuddy/internal/client/api"
	"barkbuddy/internal/client/geo"

	"github.com/spf13/cobra"
)

var sightingsCmd = &cobra.Command{
	Use:     "sightings",
	Aliases: []string{"locations"},
	Short:   "Record and review where you met a dog",
}

var sightingsAddCmd = &cobra.Command{
	Use:   "add DOG_ID",
	Short: "Record a sighting (--lat/--lng or --locate)",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := locatorFromFlags(cmd)
		if loc == nil {
			return cmd.Usage()
		}
		c, ok, err := geo.Locate(cmd.Context(), loc, cli.profile.GeoTimeout())
		if !ok {
			return err
		}
		l, err := cli.client.AddSighting(cmd.Context(), args[0], c.Latitude, c.Longitude)
		if err != nil {
			return err
		}
		cli.view.Success("sighting recorded")
		cli.view.Sightings([]api.Location{l})
		return nil
	},
}

var sightingsListCmd = &cobra.Command{
	Use:   "list DOG_ID",
	Short: "List sightings, oldest first",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		locs, err := cli.client.ListSightings(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cli.view.Sightings(locs)
		return nil
	},
}

var sightingsTrailCmd = &cobra.Command{
	Use:   "trail DOG_ID",
	Short: "Show the sightings as an encoded polyline",
	Args:  requireArgs(1, "a dog id"),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := cli.client.Trail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cli.view.Trail(tr)
		return nil
	},
}

func init() {
	sightingsAddCmd.Flags().Float64("lat", 0, "latitude")
	sightingsAddCmd.Flags().Float64("lng", 0, "longitude")
	sightingsAddCmd.Flags().Bool("locate", false, "estimate where you are from your IP")
	sightingsAddCmd.MarkFlagsRequiredTogether("lat", "lng")

	sightingsCmd.AddCommand(sightingsAddCmd, sightingsListCmd, sightingsTrailCmd)
}
