package shell

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgNotFound      = "media with name %s not found"
	msgRequestFailed = "request failed: %v"
	msgInvalidInput  = "invalid input format"
	msgReconnected   = "reconnected to media server"
)

var translatePrio = []language.Tag{
	language.English,
	language.French,
	language.Japanese,
}

func init() {
	for _, m := range []struct {
		tag language.Tag
		key string
		msg string
	}{
		{language.French, msgNotFound, "média avec le nom %s introuvable"},
		{language.French, msgRequestFailed, "échec de la requête : %v"},
		{language.French, msgInvalidInput, "format d'entrée invalide"},
		{language.French, msgReconnected, "reconnecté au serveur multimédia"},
		{language.Japanese, msgNotFound, "メディア %s が見つかりません"},
		{language.Japanese, msgRequestFailed, "リクエストに失敗しました: %v"},
		{language.Japanese, msgInvalidInput, "入力形式が正しくありません"},
		{language.Japanese, msgReconnected, "メディアサーバーに再接続しました"},
	} {
		message.SetString(m.tag, m.key, m.msg)
	}
}

// Language matches lang (a BCP 47 tag or a POSIX locale such as "fr_FR.UTF-8")
// against the supported languages.
func Language(lang string) language.Tag {
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang = lang[:i]
	}
	t, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, i, _ := language.NewMatcher(translatePrio).Match(t)
	return translatePrio[i]
}
