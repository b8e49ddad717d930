package puzzle

import (
	"github.com/samber/lo"
	"github.com/vytor/hippomemory/internal/models"
)

// Category is a named pool of items used when no authored puzzle exists.
type Category struct {
	Name  string
	Items []models.Item
}

func category(name string, labels ...string) Category {
	return Category{Name: name, Items: lo.Map(labels, func(l string, _ int) models.Item {
		return models.TextItem(l)
	})}
}

// DefaultCategories is the fixed synthesis rotation; day n uses entry (n-1) mod len.
var DefaultCategories = []Category{
	category("Fruits", "Apple", "Banana", "Orange", "Grape", "Strawberry", "Blueberry", "Mango", "Pineapple",
		"Kiwi", "Watermelon", "Peach", "Cherry", "Pear", "Plum", "Lemon", "Lime"),
	category("Animals", "Dog", "Cat", "Bird", "Fish", "Rabbit", "Hamster", "Turtle", "Snake",
		"Lizard", "Frog", "Horse", "Cow", "Pig", "Sheep", "Goat", "Chicken"),
	category("Colors", "Red", "Blue", "Green", "Yellow", "Orange", "Purple", "Pink", "Black",
		"White", "Gray", "Brown", "Cyan", "Magenta", "Indigo", "Turquoise", "Maroon"),
	category("Vehicles", "Car", "Bike", "Bus", "Train", "Plane", "Boat", "Truck", "Motorcycle",
		"Scooter", "Helicopter", "Subway", "Taxi", "Van", "SUV", "Convertible", "Sedan"),
	category("Foods", "Pizza", "Burger", "Pasta", "Sushi", "Taco", "Salad", "Soup", "Sandwich",
		"Steak", "Chicken", "Fish", "Rice", "Bread", "Cake", "Ice Cream", "Cookie"),
	category("Sky", "Sun", "Moon", "Star", "Cloud", "Rain", "Snow", "Wind", "Storm",
		"Lightning", "Rainbow", "Aurora", "Comet", "Planet", "Galaxy", "Nebula", "Meteor"),
	category("Instruments", "Guitar", "Piano", "Drums", "Violin", "Flute", "Trumpet", "Saxophone", "Cello",
		"Harp", "Banjo", "Ukulele", "Clarinet", "Trombone", "Bass", "Harmonica", "Accordion"),
	category("Office", "Book", "Pen", "Paper", "Pencil", "Eraser", "Ruler", "Notebook", "Marker",
		"Highlighter", "Stapler", "Scissors", "Glue", "Folder", "Binder", "Calculator", "Compass"),
}

// DefaultDifficulties are attached to every synthesized puzzle and to authored
// puzzles that omit their own.
func DefaultDifficulties() map[models.Difficulty]models.DifficultyConfig {
	return map[models.Difficulty]models.DifficultyConfig{
		models.Easy:   {NumTiles: 12, RevealTime: 180, Positions: lo.RangeFrom(1, 12)},
		models.Medium: {NumTiles: 16, RevealTime: 90, Positions: lo.RangeFrom(1, 16)},
		models.Hard:   {NumTiles: 16, RevealTime: 45, Positions: lo.RangeFrom(1, 16)},
	}
}
