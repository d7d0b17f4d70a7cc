package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the board
type Theme struct {
	Name          string      `json:"name"`
	SquareDark    tcell.Color `json:"squareDark"`
	SquareLight   tcell.Color `json:"squareLight"`
	SquareHigh    tcell.Color `json:"squareHigh"`
	SquareCapture tcell.Color `json:"squareCapture"`
	SquareCheck   tcell.Color `json:"squareCheck"`
	SquareMated   tcell.Color `json:"squareMated"`
	SquareWon     tcell.Color `json:"squareWon"`
	Dot           tcell.Color `json:"dot"`
	White         tcell.Color `json:"white"`
	Black         tcell.Color `json:"black"`
	Label         tcell.Color `json:"label"`
	Status        tcell.Color `json:"status"`
}

// ThemeHex is the on-disk form of a Theme
type ThemeHex struct {
	Name          string `json:"name"`
	SquareDark    string `json:"squareDark"`
	SquareLight   string `json:"squareLight"`
	SquareHigh    string `json:"squareHigh"`
	SquareCapture string `json:"squareCapture"`
	SquareCheck   string `json:"squareCheck"`
	SquareMated   string `json:"squareMated"`
	SquareWon     string `json:"squareWon"`
	Dot           string `json:"dot"`
	White         string `json:"white"`
	Black         string `json:"black"`
	Label         string `json:"label"`
	Status        string `json:"status"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareHigh.Hex()),
		fmtHex(t.SquareCapture.Hex()),
		fmtHex(t.SquareCheck.Hex()),
		fmtHex(t.SquareMated.Hex()),
		fmtHex(t.SquareWon.Hex()),
		fmtHex(t.Dot.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Status.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareHigh),
		tcell.GetColor(t.SquareCapture),
		tcell.GetColor(t.SquareCheck),
		tcell.GetColor(t.SquareMated),
		tcell.GetColor(t.SquareWon),
		tcell.GetColor(t.Dot),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Label),
		tcell.GetColor(t.Status),
	}
}

var ErrNoTheme = errors.New("theme: no theme found")

// ImportThemes returns the theme named want, looking first in the
// provided list and then in the built-in themes
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, ErrNoTheme
}

// LoadThemes reads a JSON array of ThemeHex from path
func LoadThemes(path string) ([]ThemeHex, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var themes []ThemeHex
	if err := json.Unmarshal(b, &themes); err != nil {
		return nil, fmt.Errorf("theme: %s: %w", path, err)
	}
	return themes, nil
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",        // Name
	tcell.Color108, // SquareDark
	tcell.Color230, // SquareLight
	tcell.Color226, // SquareHigh
	tcell.Color174, // SquareCapture
	tcell.Color218, // SquareCheck
	tcell.Color160, // SquareMated
	tcell.Color120, // SquareWon
	tcell.Color240, // Dot
	tcell.Color255, // White
	tcell.Color232, // Black
	tcell.Color247, // Label
	tcell.Color247, // Status
}

// ThemeTeacup is a low contrast alternative
var ThemeTeacup = Theme{
	"teacup",           // Name
	tcell.Color188,     // SquareDark
	tcell.Color230,     // SquareLight
	tcell.Color223,     // SquareHigh
	tcell.Color217,     // SquareCapture
	tcell.Color218,     // SquareCheck
	tcell.Color167,     // SquareMated
	tcell.Color122,     // SquareWon
	tcell.Color245,     // Dot
	tcell.Color94,      // White
	tcell.Color232,     // Black
	tcell.Color247,     // Label
	tcell.ColorDefault, // Status
}

var BuiltinThemes = []Theme{ThemeBasic, ThemeTeacup}
