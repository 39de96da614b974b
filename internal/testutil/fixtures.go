package testutil

import (
	"time"

	"booktok/internal/types"
)

var ScrapedAt = time.Date(2025, 11, 21, 3, 49, 26, 0, time.UTC)

// Book returns a minimal valid record, fields not given stay at their defaults.
func Book(id, title, author string, rating float64) types.Book {
	return types.Book{
		Id:           id,
		Title:        title,
		Author:       author,
		Rating:       rating,
		CoverImage:   "https://images.example.com/" + id + ".jpg",
		GoodreadsUrl: "https://www.goodreads.com/book/show/" + id,
		Description:  "A review of " + title,
		Genre:        "Fantasy",
		ScrapedAt:    ScrapedAt,
	}
}

// Shelf is a small dataset covering authors with several books, slug collisions,
// tag keywords and rating ties.
func Shelf() []types.Book {
	fourth := Book("1", "Fourth Wing (The Empyrean, #1)", "Rebecca Yarros", 5)
	fourth.Plot = "Violet Sorrengail enters the war college for dragon riders."
	fourth.PublishedYear = 2023

	iron := Book("2", "Iron Flame (The Empyrean, #2)", "Rebecca Yarros", 4)
	iron.Plot = "The dragonrider story continues."

	cruel := Book("3", "The Cruel Prince", "Holly Black", 4.8)
	cruel.Plot = "Jude was seven when her parents were murdered and she was stolen away to the treacherous High Court of Faerie."

	punk := Book("4", "Punk 57", "Penelope Douglas", 3.5)
	punk.Description = "An enemies to lovers pen pal story."

	hideaway := Book("5", "Hideaway (Devil's Night, #2)", "Penelope Douglas", 4)
	hideaway.Description = "Dark romance at its finest."
	hideaway.ScrapedAt = ScrapedAt.Add(time.Hour)

	// same slug as punk, never reachable through GetBySlug
	punkAgain := Book("6", "Punk 57!", "penelope douglas", 2)
	punkAgain.Genre = "Romance"

	return []types.Book{fourth, iron, cruel, punk, hideaway, punkAgain}
}
