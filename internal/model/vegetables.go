package model

// Vegetables is the fixed vocabulary offered by the vegetable picker, sorted alphabetically.
var Vegetables = []string{
	"Alugbati",
	"Baguio beans",
	"Bell Pepper",
	"Bitter gourd (Ampalaya)",
	"Bok Choy",
	"Bottle gourd (Upo)",
	"Brocolli",
	"Cabbage",
	"Carrot",
	"Cassava",
	"Cauliflower",
	"Cayenne pepper (Labuyo)",
	"Chili Pepper (Siling Kulikot)",
	"Cucumber",
	"Eggplant",
	"Ginger",
	"Kangkong",
	"Lettuce",
	"Okra",
	"Onion",
	"Pechay",
	"Potato",
	"Raddish",
	"Sayote",
	"Sponge gourd (Patola)",
	"Spring Onion",
	"Squash",
	"String beans",
	"Sweet Potato",
	"Taro",
	"Tomato",
	"Yam (Ube)",
}
