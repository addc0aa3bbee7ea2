package cli

import (
	"math"

	"github.com/okian/statusboard/internal/domain/model"
	"github.com/okian/statusboard/internal/domain/query"
	"github.com/spf13/cobra"
)

// filterFlags are the selection flags shared by the query commands.
type filterFlags struct {
	models       []string
	temperatures []string
	minRating    string
	maxRating    string
	kind         string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&f.models, "model", "m", nil, "only these models (repeatable or comma-separated)")
	fs.StringSliceVarP(&f.temperatures, "temperature", "t", nil, "only these temperatures (repeatable or comma-separated)")
	fs.StringVar(&f.minRating, "min-rating", "", "lowest rating to include")
	fs.StringVar(&f.maxRating, "max-rating", "", "highest rating to include")
	fs.StringVarP(&f.kind, "kind", "k", "all", "all, activity or object")
}

// criteria builds query criteria; flags left unset select everything.
func (f *filterFlags) criteria(cmd *cobra.Command) (query.Criteria, error) {
	c := query.NewCriteria()
	fs := cmd.Flags()

	if fs.Changed("model") {
		c.Models = query.Only(f.models...)
	}
	if fs.Changed("temperature") {
		temps, err := query.ParseTemperatures(f.temperatures)
		if err != nil {
			return c, err
		}
		c.Temperatures = query.Only[model.Temperature](temps...)
	}

	lo, err := query.ParseRating(f.minRating, math.Inf(-1))
	if err != nil {
		return c, err
	}
	hi, err := query.ParseRating(f.maxRating, math.Inf(1))
	if err != nil {
		return c, err
	}
	c.Rating = query.Between(lo, hi)

	if c.Kind, err = query.ParseKindFilter(f.kind); err != nil {
		return c, err
	}
	return c, c.Validate()
}
