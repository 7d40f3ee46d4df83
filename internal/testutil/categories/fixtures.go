package categories

import (
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/storage"
)

// Fixture represents a predefined set of categories for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Categories returns the categories included in this fixture, in order.
	Categories() []model.Category
}

// fixture implements the Fixture interface.
type fixture struct {
	name       string
	categories []model.Category
}

func (f *fixture) Name() string                 { return f.name }
func (f *fixture) Categories() []model.Category { return f.categories }

// Predefined fixtures for common test scenarios.
var (
	// FixtureDiet covers overlapping diet segments so one review can match several.
	FixtureDiet = &fixture{
		name: "Diet",
		categories: []model.Category{
			{Name: "Vegan", Keywords: "vegan,plant-based"},
			{Name: "Low Sugar", Keywords: "sugar-free,low sugar,stevia"},
			{Name: "Organic", Keywords: "organic,non-GMO"},
		},
	}

	// FixtureDegenerate holds categories that can never match anything.
	FixtureDegenerate = &fixture{
		name: "Degenerate",
		categories: []model.Category{
			{Name: "Empty", Keywords: ""},
			{Name: "Whitespace", Keywords: "   "},
			{Name: "Commas", Keywords: ",, ,"},
		},
	}

	// FixturePresets is the built-in preset list.
	FixturePresets = &fixture{
		name:       "Presets",
		categories: storage.Presets(),
	}
)

// AllFixtures returns all available fixtures.
func AllFixtures() []Fixture {
	return []Fixture{FixtureDiet, FixtureDegenerate, FixturePresets}
}
