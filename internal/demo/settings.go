//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"github.com/e-gun/HipparchiaNLPNotebook/internal/annot"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/bow"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/charnn"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/classify"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/embed"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/newsgroups"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/topics"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
)

var Msg = lnch.Msg

//
// SETTINGS: one json file per demo in "~/.config/"
//

// ClassifySettings - the contents of hnb-conf-classify.json
type ClassifySettings struct {
	Model      classify.Config
	Newsgroups newsgroups.FetchOptions
}

type Settings struct {
	Annot    annot.Config
	BOW      bow.Config
	LDA      topics.LDAConfig
	Classify ClassifySettings
	CharNN   charnn.Config
	Embed    embed.Config
	Stops    []string
}

// DefaultSettings - what gets written to the config files the first time around
func DefaultSettings(cfg str.CurrentConfiguration) Settings {
	return Settings{
		Annot: annot.DefaultConfig(),
		BOW:   bow.DefaultConfig(),
		LDA:   topics.DefaultLDAConfig(),
		Classify: ClassifySettings{
			Model:      classify.DefaultConfig(),
			Newsgroups: newsgroups.DefaultFetchOptions(cfg.DataHome),
		},
		CharNN: charnn.DefaultConfig(),
		Embed:  embed.DefaultConfig(),
		Stops:  annot.DefaultStops(),
	}
}

// LoadSettings - read (or write) every demo file and then let the launch configuration override them
func LoadSettings(cfg str.CurrentConfiguration) Settings {
	d := DefaultSettings(cfg)
	s := Settings{
		Annot:    lnch.ReadOrWriteJSON(vv.CONFIGANNOT, d.Annot),
		BOW:      lnch.ReadOrWriteJSON(vv.CONFIGBOW, d.BOW),
		LDA:      lnch.ReadOrWriteJSON(vv.CONFIGLDA, d.LDA),
		Classify: lnch.ReadOrWriteJSON(vv.CONFIGCLASSIFY, d.Classify),
		CharNN:   lnch.ReadOrWriteJSON(vv.CONFIGCHARNN, d.CharNN),
		Embed:    lnch.ReadOrWriteJSON(vv.CONFIGW2V, d.Embed),
		Stops:    lnch.ReadOrWriteJSON(vv.CONFIGSTOPSENG, d.Stops),
	}
	return Override(s, cfg)
}

// Override - the command line beats the json files; "-dh" and "-wc" only count if they were typed
func Override(s Settings, cfg str.CurrentConfiguration) Settings {
	if cfg.RemoteAnnot != "" {
		s.Annot.Remote = cfg.RemoteAnnot
	}
	if cfg.Epochs > 0 {
		s.CharNN.Epochs = cfg.Epochs
	}
	if cfg.OnCLI("-dh") && cfg.DataHome != "" {
		s.Classify.Newsgroups.DataHome = cfg.DataHome
	}
	if cfg.OnCLI("-wc") && cfg.WorkerCount > 0 {
		s.LDA.Goroutines = cfg.WorkerCount
		s.CharNN.Workers = cfg.WorkerCount
		s.Embed.W2V.Goroutines = cfg.WorkerCount
		s.Embed.GloVe.Goroutines = cfg.WorkerCount
		s.Embed.LexVec.Goroutines = cfg.WorkerCount
	}
	return s
}
