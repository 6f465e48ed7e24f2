package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAllergenKeywordsPerCategory(t *testing.T) {
	cases := []struct {
		ingredient string
		category   AllergenCategory
	}{
		{"skimmed milk powder", CategoryMilk},
		{"whey protein", CategoryMilk},
		{"free range egg", CategoryEggs},
		{"peanut butter", CategoryPeanuts},
		{"chopped hazelnuts", CategoryTreeNuts},
		{"wheat flour", CategoryGluten},
		{"barley malt vinegar", CategoryGluten},
		{"tofu", CategorySoya},
		{"anchovy paste", CategoryFish},
		{"king prawn", CategoryCrustaceans},
		{"squid rings", CategoryMolluscs},
		{"tahini", CategorySesame},
		{"dijon mustard", CategoryMustard},
		{"celeriac", CategoryCelery},
		{"lupin flour", CategoryLupin},
		{"sodium metabisulphite", CategorySulphites},
	}

	for _, tc := range cases {
		t.Run(tc.ingredient, func(t *testing.T) {
			c := Classify(tc.ingredient)
			assert.True(t, c.IsAllergen)
			assert.Equal(t, tc.category, c.BaseAllergenCategory)
		})
	}
}

func TestClassifyENumberIsAdditive(t *testing.T) {
	for _, in := range []string{"E100", "e330", "E1105", "E479b"} {
		c := Classify(in)
		assert.True(t, c.IsAdditive, "expected %q to be an additive", in)
	}
	assert.False(t, Classify("free range eggs").IsAdditive)
}

func TestClassifyAdditiveNames(t *testing.T) {
	assert.True(t, Classify("monosodium glutamate").IsAdditive)
	assert.True(t, Classify("xanthan gum").IsAdditive)
	assert.True(t, Classify("aspartame").IsAdditive)
}

func TestClassifyAllergenDerivedAdditives(t *testing.T) {
	cases := []struct {
		ingredient string
		category   AllergenCategory
	}{
		{"E221", CategorySulphites},
		{"e224", CategorySulphites},
		{"soy lecithin", CategorySoya},
		{"E322", CategorySoya},
		{"lysozyme", CategoryEggs},
		{"E1105", CategoryEggs},
		{"potassium lactate", CategoryMilk},
		{"lactic acid", CategoryMilk},
		{"modified wheat starch", CategoryGluten},
		{"wheat maltodextrin", CategoryGluten},
		{"E640", CategoryCelery},
	}

	for _, tc := range cases {
		t.Run(tc.ingredient, func(t *testing.T) {
			c := Classify(tc.ingredient)
			assert.True(t, c.IsAllergen)
			assert.True(t, c.IsAdditive)
			assert.Equal(t, tc.category, c.BaseAllergenCategory)
		})
	}
}

func TestClassifyMaltodextrinNeedsWheatQualifier(t *testing.T) {
	// Unqualified maltodextrin is an additive, not a gluten source.
	c := Classify("maltodextrin")
	assert.True(t, c.IsAdditive)
	assert.False(t, c.IsAllergen)
	assert.Empty(t, c.BaseAllergenCategory)
}

func TestClassifyPlainIngredient(t *testing.T) {
	c := Classify("carrot")
	assert.False(t, c.IsAllergen)
	assert.False(t, c.IsAdditive)
	assert.Empty(t, c.BaseAllergenCategory)
}

func TestClassifyCanBeAllergenAndAdditive(t *testing.T) {
	c := Classify("sodium metabisulphite (E223)")
	assert.True(t, c.IsAllergen)
	assert.True(t, c.IsAdditive)
	assert.Equal(t, CategorySulphites, c.BaseAllergenCategory)
}

func TestClassifyEvaluationOrderIsFixed(t *testing.T) {
	// "buttermilk wheat pancake mix" matches Milk keywords and Gluten
	// keywords; Milk precedes Gluten in the documented order.
	c := Classify("buttermilk wheat pancake mix")
	assert.Equal(t, CategoryMilk, c.BaseAllergenCategory)
}

func TestCategoryEnumerationIsComplete(t *testing.T) {
	assert.Len(t, CategoryOrder, 14)
	for _, cat := range CategoryOrder {
		assert.NotEmpty(t, AllergenKeywords[cat], "category %s has no keywords", cat)
	}
}
