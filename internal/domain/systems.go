package domain

import "sort"

// systemTable lists the platforms the device can index. Thumbnail folders
// follow the libretro-thumbnails repository naming.
var systemTable = []System{
	{ID: "NES", Name: "NES", ThumbnailFolder: "Nintendo - Nintendo Entertainment System"},
	{ID: "SNES", Name: "SNES", ThumbnailFolder: "Nintendo - Super Nintendo Entertainment System"},
	{ID: "N64", Name: "Nintendo 64", ThumbnailFolder: "Nintendo - Nintendo 64"},
	{ID: "GAMEBOY", Name: "Game Boy", ThumbnailFolder: "Nintendo - Game Boy"},
	{ID: "GBC", Name: "Game Boy Color", ThumbnailFolder: "Nintendo - Game Boy Color"},
	{ID: "GBA", Name: "Game Boy Advance", ThumbnailFolder: "Nintendo - Game Boy Advance"},
	{ID: "Genesis", Name: "Genesis", ThumbnailFolder: "Sega - Mega Drive - Genesis"},
	{ID: "SMS", Name: "Master System", ThumbnailFolder: "Sega - Master System - Mark III"},
	{ID: "GameGear", Name: "Game Gear", ThumbnailFolder: "Sega - Game Gear"},
	{ID: "MegaCD", Name: "Sega CD", ThumbnailFolder: "Sega - Mega-CD - Sega CD"},
	{ID: "S32X", Name: "32X", ThumbnailFolder: "Sega - 32X"},
	{ID: "TGFX16", Name: "TurboGrafx-16", ThumbnailFolder: "NEC - PC Engine - TurboGrafx 16"},
	{ID: "TGFX16-CD", Name: "TurboGrafx-CD", ThumbnailFolder: "NEC - PC Engine CD - TurboGrafx-CD"},
	{ID: "PSX", Name: "PlayStation", ThumbnailFolder: "Sony - PlayStation"},
	{ID: "NeoGeo", Name: "Neo Geo", ThumbnailFolder: "SNK - Neo Geo"},
	{ID: "Atari2600", Name: "Atari 2600", ThumbnailFolder: "Atari - 2600"},
	{ID: "Atari5200", Name: "Atari 5200", ThumbnailFolder: "Atari - 5200"},
	{ID: "Atari7800", Name: "Atari 7800", ThumbnailFolder: "Atari - 7800"},
	{ID: "AtariLynx", Name: "Atari Lynx", ThumbnailFolder: "Atari - Lynx"},
	{ID: "WonderSwan", Name: "WonderSwan", ThumbnailFolder: "Bandai - WonderSwan"},
	{ID: "Arcade", Name: "Arcade", ThumbnailFolder: "MAME"},
}

// Systems returns the system table sorted by display name.
func Systems() []System {
	out := make([]System, len(systemTable))
	copy(out, systemTable)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// SystemByID looks up a system by its stable identifier.
func SystemByID(id string) (System, bool) {
	for _, s := range systemTable {
		if s.ID == id {
			return s, true
		}
	}
	return System{}, false
}
