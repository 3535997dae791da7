// This file is part of tasengine.
//
// tasengine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tasengine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tasengine.  If not, see <https://www.gnu.org/licenses/>.

// Package gameinfo holds the auxiliary information about the game that is
// displayed in the studio. The information is produced by the host and is
// saved and restored alongside savestates.
package gameinfo

import "strings"

// Info is copied by value. None of the fields refer to shared memory.
type Info struct {
	Status            string
	StatusWithoutTime string
	LevelName         string
	ChapterTime       string
	FileTime          string

	LastVel             string
	LastPlayerSeekerVel string
	LastPos             string
	LastPlayerSeekerPos string

	InspectingInfo string
	CustomInfo     string

	DashTime float32
	Frozen   bool
}

// StudioInfo returns the text shown in the studio's information panel.
func (inf Info) StudioInfo() string {
	var l []string
	for _, s := range []string{inf.Status, inf.CustomInfo, inf.InspectingInfo} {
		if s != "" {
			l = append(l, s)
		}
	}
	return strings.Join(l, "\n")
}

// Provider is implemented by types that produce game information.
type Provider interface {
	GameInfo() Info
}

// Holder is the live copy of the game information. The savestate coordinator
// snapshots it on save and restores it on load.
type Holder struct {
	Info
	provider Provider
}

// NewHolder is the preferred method of initialisation for the Holder type.
// The provider can be nil.
func NewHolder(provider Provider) *Holder {
	return &Holder{provider: provider}
}

// Update refreshes the information from the provider.
func (h *Holder) Update() {
	if h.provider == nil {
		return
	}
	h.Info = h.provider.GameInfo()
}

// Snapshot returns a copy of the current information.
func (h *Holder) Snapshot() Info {
	return h.Info
}

// Restore replaces the current information.
func (h *Holder) Restore(inf Info) {
	h.Info = inf
}

// Clear the current information.
func (h *Holder) Clear() {
	h.Info = Info{}
}
