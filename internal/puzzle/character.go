package puzzle

import "fmt"

// artworkURL is the official-artwork sprite location, indexed by dex number.
const artworkURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// Character is a collectible revealed by completing a puzzle.
type Character struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	ImageURL string `yaml:"image_url" json:"imageUrl"`
}

// ArtworkURL returns the official artwork address for a dex number.
func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURL, id)
}

// DefaultCollection returns the built-in characters in unlock order.
func DefaultCollection() []Character {
	entries := []struct {
		id   int
		name string
	}{
		{25, "Pikachu"},
		{6, "Charizard"},
		{3, "Venusaur"},
		{9, "Blastoise"},
		{150, "Mewtwo"},
		{151, "Mew"},
		{144, "Articuno"},
		{145, "Zapdos"},
		{146, "Moltres"},
		{149, "Dragonite"},
	}

	out := make([]Character, len(entries))
	for i, e := range entries {
		out[i] = Character{ID: e.id, Name: e.name, ImageURL: ArtworkURL(e.id)}
	}
	return out
}
