package catalog

func item(name, image string, types ...string) Item {
	return Item{Name: name, Image: image, Types: types}
}

func seedThemes() []Theme {
	return []Theme{
		{Item: item("Birthday Bash", "themes/birthday.png", "birthday", "kids", "adults")},
		{Item: item("Halloween Night", "themes/halloween.png", "holiday", "costume", "adults")},
		{Item: item("Tropical Luau", "themes/luau.png", "outdoor", "summer")},
		{Item: item("Winter Wonderland", "themes/winter.png", "holiday", "indoor")},
		{Item: item("Casino Night", "themes/casino.png", "adults", "indoor")},
	}
}

func seedDecorations() []Decoration {
	return []Decoration{
		{Item: item("Balloon Arch", "decorations/balloon-arch.png", "balloons", "entrance"), Themes: []string{"Birthday Bash"}},
		{Item: item("Carved Pumpkins", "decorations/pumpkins.png", "table", "lighting"), Themes: []string{"Halloween Night"}},
		{Item: item("Tiki Torches", "decorations/tiki.png", "lighting", "outdoor"), Themes: []string{"Tropical Luau"}},
		{Item: item("Paper Snowflakes", "decorations/snowflakes.png", "hanging"), Themes: []string{"Winter Wonderland"}},
		{Item: item("Playing Card Garland", "decorations/cards.png", "hanging"), Themes: []string{"Casino Night"}},
	}
}

func seedFood() []Food {
	return []Food{
		{Item: item("Layer Cake", "food/cake.png", "dessert", "sweet"), Themes: []string{"Birthday Bash"}},
		{Item: item("Mummy Hot Dogs", "food/mummy-dogs.png", "main", "kids"), Themes: []string{"Halloween Night"}},
		{Item: item("Pineapple Skewers", "food/pineapple.png", "snack", "vegan"), Themes: []string{"Tropical Luau"}},
		{Item: item("Gingerbread Cookies", "food/gingerbread.png", "dessert", "sweet"), Themes: []string{"Winter Wonderland"}},
		{Item: item("Canapés", "food/canapes.png", "snack"), Themes: []string{"Casino Night"}},
	}
}

func seedDrinks() []Drink {
	return []Drink{
		{Item: item("Fruit Punch", "drinks/punch.png", "non-alcoholic", "kids"), Themes: []string{"Birthday Bash", "Tropical Luau"}},
		{Item: item("Witch's Brew", "drinks/brew.png", "non-alcoholic"), Themes: []string{"Halloween Night"}},
		{Item: item("Piña Colada", "drinks/pina-colada.png", "cocktail", "alcoholic"), Themes: []string{"Tropical Luau"}},
		{Item: item("Hot Cocoa", "drinks/cocoa.png", "hot", "non-alcoholic"), Themes: []string{"Winter Wonderland"}},
		{Item: item("Martini", "drinks/martini.png", "cocktail", "alcoholic"), Themes: []string{"Casino Night"}},
	}
}

func seedActivities() []Activity {
	return []Activity{
		{Item: item("Piñata", "activities/pinata.png", "kids", "game"), Themes: []string{"Birthday Bash"}},
		{Item: item("Costume Contest", "activities/costume.png", "contest", "adults"), Themes: []string{"Halloween Night"}},
		{Item: item("Limbo", "activities/limbo.png", "game", "outdoor"), Themes: []string{"Tropical Luau"}},
		{Item: item("Ugly Sweater Contest", "activities/sweater.png", "contest"), Themes: []string{"Winter Wonderland"}},
		{Item: item("Poker Table", "activities/poker.png", "game", "adults"), Themes: []string{"Casino Night"}},
	}
}
