package models

import "time"

// PersonalityType is static reference data: one of five profile types, each
// tied to a score dimension and a color used across the UI.
type PersonalityType struct {
	ID          uint   `gorm:"primaryKey"`
	Dimension   int    `gorm:"not null;uniqueIndex"`
	Name        string `gorm:"not null"`
	Color       string `gorm:"not null"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
}

// QuizQuestion is static reference data: one personality-quiz question with
// two answer options, each adding its score delta to the 5-dim type score.
type QuizQuestion struct {
	ID           uint   `gorm:"primaryKey"`
	Position     int    `gorm:"not null;uniqueIndex"`
	Prompt       string `gorm:"not null"`
	FirstOption  string `gorm:"not null"`
	FirstScores  []int  `gorm:"serializer:json"`
	SecondOption string `gorm:"not null"`
	SecondScores []int  `gorm:"serializer:json"`
}

type BuiltinPersonalityType struct {
	Dimension   int
	Name        string
	Color       string
	Description string
}

func DefaultPersonalityTypes() []BuiltinPersonalityType {
	return []BuiltinPersonalityType{
		{Dimension: 0, Name: "Sunny Starter", Color: "#FFB95A", Description: "Kicks chores off early and drags everyone along."},
		{Dimension: 1, Name: "Steady Keeper", Color: "#FF5B5B", Description: "Never misses a routine once it is on the board."},
		{Dimension: 2, Name: "Calm Mediator", Color: "#5B8DFF", Description: "Smooths over who-does-what arguments before they start."},
		{Dimension: 3, Name: "Fresh Thinker", Color: "#43CF8C", Description: "Finds a shortcut for every recurring task."},
		{Dimension: 4, Name: "Cozy Supporter", Color: "#A974FF", Description: "Backs up whoever is behind on their share."},
	}
}

type BuiltinQuizQuestion struct {
	Position     int
	Prompt       string
	FirstOption  string
	FirstScores  []int
	SecondOption string
	SecondScores []int
}

func DefaultQuizQuestions() []BuiltinQuizQuestion {
	return []BuiltinQuizQuestion{
		{
			Position:     1,
			Prompt:       "A pile of dishes appears in the sink. You...",
			FirstOption:  "Wash them right away, even if they are not yours",
			FirstScores:  []int{2, 1, 0, 0, 1},
			SecondOption: "Leave a note asking whose turn it is",
			SecondScores: []int{0, 1, 2, 1, 0},
		},
		{
			Position:     2,
			Prompt:       "Your roommate forgot their chore again. You...",
			FirstOption:  "Cover for them without mentioning it",
			FirstScores:  []int{0, 0, 1, 0, 2},
			SecondOption: "Bring it up at the next house meeting",
			SecondScores: []int{1, 2, 1, 0, 0},
		},
		{
			Position:     3,
			Prompt:       "The cleaning rota feels unfair. You...",
			FirstOption:  "Redesign the whole schedule from scratch",
			FirstScores:  []int{1, 0, 0, 2, 0},
			SecondOption: "Talk it through until everyone agrees",
			SecondScores: []int{0, 0, 2, 0, 1},
		},
		{
			Position:     4,
			Prompt:       "It is Sunday morning. Your ideal start is...",
			FirstOption:  "Knocking out the weekly reset before breakfast",
			FirstScores:  []int{2, 1, 0, 0, 0},
			SecondOption: "A slow coffee, chores can wait until noon",
			SecondScores: []int{0, 0, 1, 1, 2},
		},
		{
			Position:     5,
			Prompt:       "A new gadget promises to automate a chore. You...",
			FirstOption:  "Buy it immediately and set it up for the house",
			FirstScores:  []int{1, 0, 0, 2, 1},
			SecondOption: "Stick with the routine that already works",
			SecondScores: []int{0, 2, 1, 0, 0},
		},
		{
			Position:     6,
			Prompt:       "Guests are coming in an hour. You...",
			FirstOption:  "Rally everyone and split the tidy-up",
			FirstScores:  []int{2, 0, 1, 0, 1},
			SecondOption: "Quietly handle the visible mess yourself",
			SecondScores: []int{0, 1, 0, 1, 2},
		},
		{
			Position:     7,
			Prompt:       "Keeping track of shared bills works best with...",
			FirstOption:  "A strict ledger updated the day they arrive",
			FirstScores:  []int{0, 2, 0, 1, 0},
			SecondOption: "A rough split settled whenever someone asks",
			SecondScores: []int{1, 0, 2, 0, 1},
		},
		{
			Position:     8,
			Prompt:       "When the trash rota lands on your sick day, you...",
			FirstOption:  "Do it anyway, a rota is a rota",
			FirstScores:  []int{1, 2, 0, 0, 0},
			SecondOption: "Swap days with whoever is free",
			SecondScores: []int{0, 0, 1, 2, 1},
		},
	}
}
