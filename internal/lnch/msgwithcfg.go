//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/HipparchiaNLPNotebook/internal/mm"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
)

func NewMessageMakerWithDefaults() *mm.MessageMaker {
	return mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION, vv.DEFAULTGOLOGLEVEL)
}

// UpdateMessageMakerWithConfig - the packages all share lnch.Msg; this is how they learn about "-gl" and "-bw"
func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.BW = Config.BlackAndWhite
	m.GC = Config.ManualGC
	m.LLvl = Config.LogLevel
}
