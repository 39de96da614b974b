package tags

import "booktok/internal/types"

var Taxonomy = []types.Tag{
	{
		Slug:        "dark-romance",
		Name:        "Dark Romance",
		Description: "Intense, morally grey romances with darker themes",
		Keywords:    []string{"dark romance", "dark verse", "bully romance", "enemies to lovers", "morally grey", "villain"},
	},
	{
		Slug:        "dragons",
		Name:        "Dragon Fantasy",
		Description: "Epic fantasy featuring dragons and dragon riders",
		Keywords:    []string{"dragon", "wyrm", "dragonrider", "fourth wing"},
	},
	{
		Slug:        "fae",
		Name:        "Fae & Faerie",
		Description: "Stories featuring the fair folk and fae courts",
		Keywords:    []string{"fae", "faerie", "faery", "court of", "folk of the air", "sidhe"},
	},
	{
		Slug:        "vampires",
		Name:        "Vampires",
		Description: "Vampire romance and dark vampire fantasy",
		Keywords:    []string{"vampire", "blood", "immortal", "fangs"},
	},
	{
		Slug:        "witches",
		Name:        "Witches & Magic",
		Description: "Stories featuring witches, witchcraft, and magic users",
		Keywords:    []string{"witch", "witchcraft", "coven", "magic", "spell"},
	},
	{
		Slug:        "enemies-to-lovers",
		Name:        "Enemies to Lovers",
		Description: "Romance where characters start as rivals or enemies",
		Keywords:    []string{"enemies to lovers", "hate to love", "rivals", "forbidden"},
	},
	{
		Slug:        "high-fantasy",
		Name:        "High Fantasy",
		Description: "Epic world-building with extensive fantasy settings",
		Keywords:    []string{"kingdom", "throne", "empire", "realm", "court", "crown", "prince", "princess", "king", "queen"},
	},
}
