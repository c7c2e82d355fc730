package recommend

import (
	"meal-recommender/internal/core/catalog"
)

// newTestCatalog 10 筆食譜，其中 6 筆含 egg
func newTestCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Recipe{
		{ID: 1, Name: "Omelette", RawIngredients: `c("Eggs", "Milk", "Butter")`, RawInstructions: `c("Beat the eggs.", "Cook in butter.")`,
			CookTime: 5, PrepTime: 5, TotalTime: 10,
			Nutrition: catalog.Nutrition{320, 24, 10, 380, 300, 3, 0, 2, 19}},
		{ID: 2, Name: "Egg Fried Rice", RawIngredients: `c("rice", "egg", "soy sauce", "peas")`, RawInstructions: `c("Fry rice.", "Add egg.")`,
			CookTime: 15, PrepTime: 10, TotalTime: 25,
			Nutrition: catalog.Nutrition{520, 14, 3, 185, 900, 80, 3, 2, 15}},
		{ID: 3, Name: "Chicken Caesar", RawIngredients: `c("chicken breast", "romaine", "Egg yolk", "parmesan")`, RawInstructions: `c("Grill chicken.", "Toss salad.")`,
			CookTime: 20, PrepTime: 15, TotalTime: 35,
			Nutrition: catalog.Nutrition{610, 38, 9, 160, 1100, 12, 4, 3, 52}},
		{ID: 4, Name: "Pancakes", RawIngredients: `c("flour", "eggs", "milk", "sugar")`, RawInstructions: `c("Mix.", "Fry.")`,
			CookTime: 10, PrepTime: 10, TotalTime: 20,
			Nutrition: catalog.Nutrition{450, 12, 5, 95, 520, 70, 2, 18, 11}},
		{ID: 5, Name: "Walnut Brownies", RawIngredients: `c("cocoa", "eggs", "walnuts", "sugar")`, RawInstructions: `c("Mix.", "Bake.")`,
			CookTime: 30, PrepTime: 15, TotalTime: 45,
			Nutrition: catalog.Nutrition{480, 28, 11, 70, 150, 55, 4, 38, 7}},
		{ID: 6, Name: "Egg Salad", RawIngredients: `c("EGG", "mayonnaise", "celery")`, RawInstructions: `c("Boil eggs.", "Chop and mix.")`,
			CookTime: 12, PrepTime: 8, TotalTime: 20,
			Nutrition: catalog.Nutrition{290, 22, 5, 370, 410, 2, 1, 1, 13}},
		{ID: 7, Name: "Roast Chicken", RawIngredients: `c("chicken", "lemon", "garlic")`, RawInstructions: `c("Season.", "Roast.")`,
			CookTime: 80, PrepTime: 10, TotalTime: 90,
			Nutrition: catalog.Nutrition{700, 45, 13, 240, 800, 4, 1, 1, 65}},
		{ID: 8, Name: "Trail Mix", RawIngredients: `c("peanuts", "raisins", "chocolate")`, RawInstructions: `c("Combine.")`,
			CookTime: 0, PrepTime: 5, TotalTime: 5,
			Nutrition: catalog.Nutrition{600, 35, 8, 0, 90, 60, 7, 40, 16}},
		{ID: 9, Name: "Lentil Soup", RawIngredients: `c("lentils", "carrot", "onion")`, RawInstructions: `c("Simmer.")`,
			CookTime: 40, PrepTime: 10, TotalTime: 50,
			Nutrition: catalog.Nutrition{350, 6, 1, 0, 700, 55, 15, 6, 18}},
		{ID: 10, Name: "Chicken Pesto Pasta", RawIngredients: `c("chicken", "pasta", "pine nuts", "basil")`, RawInstructions: `c("Boil pasta.", "Toss with pesto.")`,
			CookTime: 20, PrepTime: 10, TotalTime: 30,
			Nutrition: catalog.Nutrition{820, 40, 9, 90, 650, 75, 5, 4, 42}},
	})
}

func defaultQuery(count int) Query {
	return Query{
		Nutrition: catalog.Nutrition{500, 50, 0, 0, 400, 100, 10, 10, 10},
		Count:     count,
	}
}
