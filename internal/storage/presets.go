package storage

import (
	"fmt"
	"strings"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
)

// previewKeywords is how many keywords a preset preview shows.
const previewKeywords = 5

// presets are the built-in population segments offered for one-click import.
var presets = []model.Category{
	{
		Name:     "儿童或青少年",
		Keywords: "kids,girl,girls,boy,boys,children,teen,picky eater,child-friendly,baby,sugar coating,candy-like,my daughter,my son",
	},
	{
		Name:     "孕妇或哺乳期女性",
		Keywords: "pregnant,pregnancy,nursing,breastfeeding,menstrual,period,hormonal support,prenatal,postpartum,label says do not use during pregnancy",
	},
	{
		Name:     "素食者或健康饮食者",
		Keywords: "vegan,vegetarian,plant-based,no artificial,no gluten,no high fructose corn syrup,organic,non-GMO,natural ingredients,sugar-free,low sugar,stevia",
	},
	{
		Name:     "健身运动人群",
		Keywords: "fitness,exercise,training,athlete,workout,gym,sports,muscle,strength,endurance,protein,Boosts endurance,Boosts strength",
	},
}

// Presets returns a copy of the built-in categories.
func Presets() []model.Category {
	out := make([]model.Category, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks up a built-in category by name.
func FindPreset(name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Category{}, common.NewNotFound("preset", name)
}

// PresetPreview shows the first few keywords of c, noting the total when
// some are hidden.
func PresetPreview(c model.Category) string {
	keywords := c.KeywordList()
	if len(keywords) <= previewKeywords {
		return strings.Join(keywords, ", ")
	}
	return fmt.Sprintf("%s... (%d keywords)", strings.Join(keywords[:previewKeywords], ", "), len(keywords))
}
