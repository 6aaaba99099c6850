package stanseg

import (
	"path/filepath"

	"github.com/jamesainslie/go-stanseg/locate"
)

// Language tags understood by ApplyDefaults.
const (
	LangArabic  = "ar"
	LangChinese = "zh"
)

const (
	arabicEntryPoint  = "edu.stanford.nlp.international.arabic.process.ArabicSegmenter"
	arabicModel       = "arabic-segmenter-atb+bn+arztrain.ser.gz"
	chineseEntryPoint = "edu.stanford.nlp.ie.crf.CRFClassifier"
	chineseModel      = "pku.gz"
	chineseDict       = "dict-chris6.ser.gz"
	sighanCorporaDir  = "data"
)

// Overrides are settings the caller already knows. ApplyDefaultsWith uses
// them instead of the language defaults and skips the matching lookups.
type Overrides struct {
	EntryPoint string
	Model      string

	// Dictionary and CorporaDir are used only as a pair.
	Dictionary string
	CorporaDir string

	// PostProcessing, when non-nil, replaces the language's SIGHAN
	// post-processing default.
	PostProcessing *bool
}

func (o Overrides) sighan() bool {
	return o.Dictionary != "" && o.CorporaDir != ""
}

// ApplyDefaults configures the entry point, model and, for Chinese, the
// dictionary and SIGHAN corpora for lang ("ar" or "zh"). Artifacts are
// looked up through $STANFORD_MODELS, $STANFORD_SEGMENTER and
// $STANFORD_SEGMENTER/data.
//
// Chinese-only settings are cleared for every language before the new ones
// are applied. All lookups run before anything is changed, so on error the
// previous configuration stays in place; callers should still treat the
// error as fatal.
func (s *Segmenter) ApplyDefaults(lang string) error {
	return s.ApplyDefaultsWith(lang, Overrides{})
}

// ApplyDefaultsWith is ApplyDefaults with explicit settings layered over the
// language defaults. An artifact given in o is used as is and never looked
// up. A dictionary and corpora pair given in o enables SIGHAN for Arabic too.
func (s *Segmenter) ApplyDefaultsWith(lang string, o Overrides) error {
	var searchPath []string
	if root, ok := s.locator.LookupEnv("STANFORD_SEGMENTER"); ok && root != "" {
		searchPath = []string{filepath.Join(root, "data")}
	}

	var (
		entryPoint string
		model      string
		sighan     *Sighan
	)

	switch lang {
	case LangArabic:
		entryPoint = arabicEntryPoint
		model = arabicModel
		if o.sighan() {
			sighan = &Sighan{Dictionary: o.Dictionary, CorporaDir: o.CorporaDir}
		}

	case LangChinese:
		entryPoint = chineseEntryPoint
		model = chineseModel
		sighan = &Sighan{
			Dictionary:     o.Dictionary,
			CorporaDir:     o.CorporaDir,
			PostProcessing: true,
		}

		if !o.sighan() {
			dict, err := s.locator.Find(locate.Query{
				Name:       chineseDict,
				EnvVars:    []string{"STANFORD_MODELS"},
				SearchDirs: searchPath,
				URL:        DownloadURL,
				Hint:       "Chinese segmenter dictionary",
			})
			if err != nil {
				return err
			}

			corpora, err := s.locator.Find(locate.Query{
				Name:    sighanCorporaDir,
				Kind:    locate.Dir,
				EnvVars: []string{"STANFORD_SEGMENTER"},
				URL:     DownloadURL,
				Hint:    "SIGHAN corpora directory",
			})
			if err != nil {
				return err
			}
			sighan.Dictionary, sighan.CorporaDir = dict, corpora
		}

	default:
		return &UnsupportedLanguageError{Lang: lang}
	}

	if sighan != nil && o.PostProcessing != nil {
		sighan.PostProcessing = *o.PostProcessing
	}
	if o.EntryPoint != "" {
		entryPoint = o.EntryPoint
	}

	modelPath := o.Model
	if modelPath == "" {
		var err error
		modelPath, err = s.locator.Find(locate.Query{
			Name:       model,
			EnvVars:    []string{"STANFORD_MODELS", "STANFORD_SEGMENTER"},
			SearchDirs: searchPath,
			URL:        DownloadURL,
			Hint:       lang + " segmenter model",
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cfg.EntryPoint = entryPoint
	s.cfg.Model = modelPath
	s.cfg.Sighan = sighan
	s.mu.Unlock()

	s.logger.Debug("applied language defaults",
		"lang", lang,
		"entry_point", entryPoint,
		"model", modelPath,
		"sighan", sighan != nil,
	)
	return nil
}
