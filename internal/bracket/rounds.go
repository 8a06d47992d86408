package bracket

import (
	"errors"
	"fmt"
	"strings"
)

// Round is a canonical tournament round code.
type Round string

const (
	RoundOf64    Round = "R64"
	RoundOf32    Round = "R32"
	Sweet16      Round = "S16"
	Elite8       Round = "E8"
	FinalFour    Round = "F4"
	Championship Round = "NCG"
)

var ErrUnknownRound = errors.New("unknown round")

// roundOrder lists every round in the order they are played.
var roundOrder = []Round{RoundOf64, RoundOf32, Sweet16, Elite8, FinalFour, Championship}

var roundLabels = map[Round]string{
	RoundOf64:    "First Round",
	RoundOf32:    "Second Round",
	Sweet16:      "Sweet 16",
	Elite8:       "Elite 8",
	FinalFour:    "Final Four",
	Championship: "Championship",
}

var roundAliases = map[string]Round{
	"r64": RoundOf64, "1": RoundOf64, "first": RoundOf64, "first round": RoundOf64,
	"r32": RoundOf32, "2": RoundOf32, "second": RoundOf32, "second round": RoundOf32,
	"s16": Sweet16, "3": Sweet16, "sweet 16": Sweet16, "sweet16": Sweet16,
	"e8": Elite8, "4": Elite8, "elite 8": Elite8, "elite8": Elite8,
	"f4": FinalFour, "5": FinalFour, "final four": FinalFour, "semifinal": FinalFour,
	"ncg": Championship, "6": Championship, "championship": Championship, "final": Championship,
}

// Rounds returns all rounds in canonical order.
func Rounds() []Round {
	out := make([]Round, len(roundOrder))
	copy(out, roundOrder)
	return out
}

// ParseRound accepts a round code, its ordinal (1-6) or a common name.
func ParseRound(s string) (Round, error) {
	if r, ok := roundAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRound, s)
}

// Index returns the zero-based position of r in play order, or -1.
func (r Round) Index() int {
	for i, o := range roundOrder {
		if o == r {
			return i
		}
	}
	return -1
}

func (r Round) Label() string {
	if l, ok := roundLabels[r]; ok {
		return l
	}
	return string(r)
}

func (r Round) Valid() bool { return r.Index() >= 0 }

// CrossRegion reports whether r is played between regional champions.
func (r Round) CrossRegion() bool {
	return r == FinalFour || r == Championship
}
