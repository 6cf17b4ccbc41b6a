// Package content loads the home page's editorial sections from a YAML
// file, falling back to built-in copy when the file is absent or broken.
package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Home holds the landing-page editorial sections.
type Home struct {
	Hero        Hero         `yaml:"hero"`
	Collections []Collection `yaml:"collections"`
	Stylist     Promo        `yaml:"stylist"`
}

// Hero is the landing banner with its two category entry points.
type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Image    string `yaml:"image"`
}

// Collection is one curated category card.
type Collection struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Image    string `yaml:"image"`
}

// Promo advertises the AI stylist.
type Promo struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// LoadHome reads path when non-empty; any failure falls back to the
// built-in defaults with the error reported alongside.
func LoadHome(path string) (Home, error) {
	if path == "" {
		return Fallback(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Fallback(), fmt.Errorf("content: read %s: %w", path, err)
	}
	var h Home
	if err := yaml.Unmarshal(b, &h); err != nil {
		return Fallback(), fmt.Errorf("content: parse %s: %w", path, err)
	}
	if h.Hero.Title == "" {
		h.Hero = Fallback().Hero
	}
	if len(h.Collections) == 0 {
		h.Collections = Fallback().Collections
	}
	if h.Stylist.Title == "" {
		h.Stylist = Fallback().Stylist
	}
	return h, nil
}

// Fallback returns the built-in editorial copy.
func Fallback() Home {
	return Home{
		Hero: Hero{
			Title:    "Timeless pieces, made yours",
			Subtitle: "Custom-tailored garments for every occasion.",
		},
		Collections: []Collection{
			{Title: "Men", Category: "men"},
			{Title: "Women", Category: "women"},
		},
		Stylist: Promo{
			Title: "AI-Powered Styling",
			Body:  "Get personalized outfit recommendations tuned to your taste.",
		},
	}
}
