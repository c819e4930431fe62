package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontligatures"
	"github.com/npillmayer/fontligatures/ruleset"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/sfnt"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f, err := fontligatures.LoadOpenTypeFont(fontPath)
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", f.Fontname)
	family, sub := f.FamilyName()
	if family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if version, err := f.SFNT.Name(nil, sfnt.NameIDVersion); err == nil && version != "" {
		fmt.Printf("Version: %s\n", version)
	}
	fmt.Printf("Glyphs: %d  UnitsPerEm: %d\n", f.SFNT.NumGlyphs(), f.SFNT.UnitsPerEm())

	if zw, ok := f.GlyphIndex(ruleset.ZeroWidthSpace); ok {
		fmt.Printf("Zero-width space: glyph %d\n", zw)
	} else {
		fmt.Println("Zero-width space: missing, automatic ligatures unavailable")
	}
	fmt.Println("Default ligatures:")
	for _, lig := range ruleset.DefaultLigatures {
		missing := make([]string, 0, 2)
		for _, r := range lig.Sequence + string(lig.Output) {
			if _, ok := f.GlyphIndex(r); !ok {
				missing = append(missing, fmt.Sprintf("%U", r))
			}
		}
		if len(missing) == 0 {
			fmt.Printf("  %-10s ok\n", lig.String())
		} else {
			fmt.Printf("  %-10s missing %s\n", lig.String(), strings.Join(missing, ","))
		}
	}
}
