package shell

import (
	"errors"
	"testing"

	"github.com/meiraka/mediaremote/internal/remote"
	"golang.org/x/text/language"
)

func TestParseInput(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
		err  error
	}{
		{in: "Enter media name : Inception", want: "Inception"},
		{in: "Enter media name :Inception", want: "Inception"},
		{in: "Enter media name : Matrix\nignored", want: "Matrix"},
		{in: "Enter media name : The Matrix  \r\nignored", want: "The Matrix"},
		{in: "Enter media name : ", err: remote.ErrInvalidInput},
		{in: "Enter media name :\nMatrix", err: remote.ErrInvalidInput},
		{in: "Matrix", err: remote.ErrInvalidInput},
		{in: "", err: remote.ErrInvalidInput},
	} {
		got, err := ParseInput(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseInput(%q) got err %v; want %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseInput(%q) got %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguage(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want language.Tag
	}{
		{in: "", want: language.English},
		{in: "C", want: language.English},
		{in: "en_US.UTF-8", want: language.English},
		{in: "fr_FR.UTF-8", want: language.French},
		{in: "fr", want: language.French},
		{in: "ja-JP", want: language.Japanese},
		{in: "de", want: language.English},
	} {
		if got := Language(tt.in); got != tt.want {
			t.Errorf("Language(%q) got %v; want %v", tt.in, got, tt.want)
		}
	}
}
