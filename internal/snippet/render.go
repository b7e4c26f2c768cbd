package snippet

import "github.com/sirupsen/logrus"

// NotFoundPrefix starts the placeholder shown for a missing file
const NotFoundPrefix = "Not Found: "

// RenderToken is the short-lived result of rendering one directive
type RenderToken struct {
	LanguageHint  string // lang option, else the file extension
	HighlightMeta string // Raw highlight value, possibly empty
	Content       string
}

// Info returns the code block annotation: language hint immediately followed by
// the highlight value
func (t RenderToken) Info() string {
	return t.LanguageHint + t.HighlightMeta
}

// Render loads and extracts the content of d. File bytes live only for the
// duration of this call.
func (e *Engine) Render(d *Directive) RenderToken {
	token := RenderToken{
		LanguageHint:  d.Path.Ext,
		HighlightMeta: d.Flags.Meta,
	}
	if lang, ok := d.Options[OptLang]; ok && lang != "" {
		token.LanguageHint = lang
	}

	if !d.FileExists {
		token.Content = NotFoundPrefix + d.TargetPath
		return token
	}

	content, err := e.loader.ReadText(d.TargetPath)
	if err != nil {
		e.log.WithError(err).WithField("path", d.TargetPath).Warn("reading snippet failed")
		token.Content = NotFoundPrefix + d.TargetPath
		return token
	}
	e.log.WithFields(logrus.Fields{"path": d.TargetPath, "bytes": len(content)}).Debug("snippet loaded")

	if d.Flags.HasTransclusion {
		token.Content = e.Transclude(content, d.Flags)
	} else {
		token.Content = content
	}
	return token
}
