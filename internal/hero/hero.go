// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package hero

import (
	"strings"
)

// Record is a single superhero as served by the superhero API. Records are
// treated as immutable once decoded.
type Record struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Slug        string      `json:"slug,omitempty" yaml:"slug,omitempty"`
	Powerstats  Powerstats  `json:"powerstats" yaml:"powerstats"`
	Appearance  Appearance  `json:"appearance" yaml:"appearance"`
	Biography   Biography   `json:"biography" yaml:"biography"`
	Work        Work        `json:"work" yaml:"work"`
	Connections Connections `json:"connections" yaml:"connections"`
	Images      Images      `json:"images" yaml:"images"`
}

// Powerstats are conventionally 0-100 but the source neither validates nor
// clamps them, and neither do we.
type Powerstats struct {
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Strength     int `json:"strength" yaml:"strength"`
	Speed        int `json:"speed" yaml:"speed"`
	Durability   int `json:"durability" yaml:"durability"`
	Power        int `json:"power" yaml:"power"`
	Combat       int `json:"combat" yaml:"combat"`
}

// MaxTotal is the nominal ceiling for Powerstats.Total.
const MaxTotal = 600

// Total sums the six stats.
func (p Powerstats) Total() int {
	return p.Intelligence + p.Strength + p.Speed + p.Durability + p.Power + p.Combat
}

// Stat is a named power stat, in display order.
type Stat struct {
	Name  string
	Value int
}

// Stats returns the six stats in display order.
func (p Powerstats) Stats() []Stat {
	return []Stat{
		{"Intelligence", p.Intelligence},
		{"Strength", p.Strength},
		{"Speed", p.Speed},
		{"Durability", p.Durability},
		{"Power", p.Power},
		{"Combat", p.Combat},
	}
}

// Appearance lists Height and Weight imperial first; the last element is
// metric.
type Appearance struct {
	Gender    Text     `json:"gender" yaml:"gender"`
	Race      Text     `json:"race" yaml:"race"`
	Height    []string `json:"height" yaml:"height"`
	Weight    []string `json:"weight" yaml:"weight"`
	EyeColor  Text     `json:"eyeColor" yaml:"eyeColor"`
	HairColor Text     `json:"hairColor" yaml:"hairColor"`
}

// MetricHeight returns the last height entry.
func (a Appearance) MetricHeight() Text {
	return last(a.Height)
}

// MetricWeight returns the last weight entry.
func (a Appearance) MetricWeight() Text {
	return last(a.Weight)
}

type Biography struct {
	FullName        Text     `json:"fullName" yaml:"fullName"`
	AlterEgos       Text     `json:"alterEgos" yaml:"alterEgos"`
	Aliases         []string `json:"aliases" yaml:"aliases"`
	PlaceOfBirth    Text     `json:"placeOfBirth" yaml:"placeOfBirth"`
	FirstAppearance Text     `json:"firstAppearance" yaml:"firstAppearance"`
	Publisher       Text     `json:"publisher" yaml:"publisher"`
	Alignment       string   `json:"alignment" yaml:"alignment"`
}

// Unknown is the placeholder shown for a missing publisher.
const Unknown = "Unknown"

// PublisherOrUnknown returns the publisher or the Unknown placeholder.
func (b Biography) PublisherOrUnknown() string {
	return b.Publisher.Or(Unknown)
}

type Work struct {
	Occupation Text `json:"occupation" yaml:"occupation"`
	Base       Text `json:"base" yaml:"base"`
}

type Connections struct {
	GroupAffiliation Text `json:"groupAffiliation" yaml:"groupAffiliation"`
	Relatives        Text `json:"relatives" yaml:"relatives"`
}

type Images struct {
	XS string `json:"xs,omitempty" yaml:"xs,omitempty"`
	SM string `json:"sm,omitempty" yaml:"sm,omitempty"`
	MD string `json:"md,omitempty" yaml:"md,omitempty"`
	LG string `json:"lg,omitempty" yaml:"lg,omitempty"`
}

// Small returns the smallest available image url.
func (i Images) Small() string {
	for _, u := range []string{i.SM, i.XS, i.MD, i.LG} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Large returns the largest available image url.
func (i Images) Large() string {
	for _, u := range []string{i.LG, i.MD, i.SM, i.XS} {
		if u != "" {
			return u
		}
	}
	return ""
}

// FullName returns the biography full name.
func (r Record) FullName() Text {
	return r.Biography.FullName
}

// DisplayFullName returns the full name only when it adds something to Name.
func (r Record) DisplayFullName() (string, bool) {
	fn, ok := r.Biography.FullName.Get()
	if !ok || strings.EqualFold(fn, r.Name) {
		return "", false
	}
	return fn, true
}

// Alignment classifies biography.alignment.
type Alignment int

const (
	Neutral Alignment = iota
	Good
	Bad
)

func (a Alignment) String() string {
	switch a {
	case Good:
		return "good"
	case Bad:
		return "bad"
	default:
		return "neutral"
	}
}

// Alignment returns the classified alignment. Anything other than good or bad,
// including "neutral" and "-", is Neutral.
func (r Record) Alignment() Alignment {
	switch strings.ToLower(strings.TrimSpace(r.Biography.Alignment)) {
	case "good":
		return Good
	case "bad":
		return Bad
	default:
		return Neutral
	}
}

func last(values []string) Text {
	if len(values) == 0 {
		return Text{}
	}
	return Some(values[len(values)-1])
}
