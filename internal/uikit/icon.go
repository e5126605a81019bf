// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit holds presentation-level registries shared by the public API
// and the admin back office.
package uikit

// Icon identifies a glyph in the front-end icon set. The API stores and
// serves icon names; the client resolves them to rendered components.
type Icon string

const (
	IconBook        Icon = "book"
	IconCalendar    Icon = "calendar"
	IconCamp        Icon = "camp"
	IconCertificate Icon = "certificate"
	IconChat        Icon = "chat"
	IconCode        Icon = "code"
	IconCommunity   Icon = "community"
	IconEmail       Icon = "email"
	IconGlobe       Icon = "globe"
	IconLaptop      Icon = "laptop"
	IconLocation    Icon = "location"
	IconMentor      Icon = "mentor"
	IconPhone       Icon = "phone"
	IconProject     Icon = "project"
	IconRocket      Icon = "rocket"
	IconTrophy      Icon = "trophy"
	IconVideo       Icon = "video"
	IconWorkshop    Icon = "workshop"
)

// icons is the closed registry. Lookups outside this set fail loudly rather
// than falling back to a placeholder.
var icons = map[string]Icon{
	string(IconBook):        IconBook,
	string(IconCalendar):    IconCalendar,
	string(IconCamp):        IconCamp,
	string(IconCertificate): IconCertificate,
	string(IconChat):        IconChat,
	string(IconCode):        IconCode,
	string(IconCommunity):   IconCommunity,
	string(IconEmail):       IconEmail,
	string(IconGlobe):       IconGlobe,
	string(IconLaptop):      IconLaptop,
	string(IconLocation):    IconLocation,
	string(IconMentor):      IconMentor,
	string(IconPhone):       IconPhone,
	string(IconProject):     IconProject,
	string(IconRocket):      IconRocket,
	string(IconTrophy):      IconTrophy,
	string(IconVideo):       IconVideo,
	string(IconWorkshop):    IconWorkshop,
}

// LookupIcon resolves name to a registered icon. The second return value
// reports whether the name is known.
func LookupIcon(name string) (Icon, bool) {
	icon, ok := icons[name]
	return icon, ok
}

// IconNames returns every registered icon name. The result is a fresh slice.
func IconNames() []string {
	names := make([]string, 0, len(icons))
	for name := range icons {
		names = append(names, name)
	}
	return names
}
