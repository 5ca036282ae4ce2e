//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	CONFIGANNOT       = "hnb-conf-annot.json"
	CONFIGBOW         = "hnb-conf-bow.json"
	CONFIGLDA         = "hnb-conf-lda.json"
	CONFIGCLASSIFY    = "hnb-conf-classify.json"
	CONFIGCHARNN      = "hnb-conf-charnn.json"
	CONFIGW2V         = "hnb-conf-w2v.json"
	CONFIGSTOPSENG    = "hnb-stops-english.json"
	DEFAULTCHRTWIDTH  = "1500px"
	DEFAULTCHRTHEIGHT = "1200px"
	MODELTABLENAME    = "hnb_models"

	// annotation
	ANNOTREPORTLIMIT = 40
	ANNOTTIMEOUT     = 30 // seconds

	// bag of words
	BOWMINLEN        = 2
	BOWSENTPERBAG    = 3
	BOWPHRASEMIN     = 5
	BOWPHRASETHRESH  = 10.0
	BOWPHRASEJOINER  = "ˣ" // a letter: nlp's tokeniser would split "new_york" into two words
	BOWNOBELOW       = 2
	BOWNOABOVE       = 0.5
	BOWKEEPN         = 100000
	BOWDEFAULTPOSSET = "NOUN,PROPN,VERB,ADJ,ADV"

	// lda
	LDATOPICS       = 6
	LDAMAXTOPICS    = 30
	LDAITER         = 200
	LDAXFORMPASSES  = 100
	LDABURNINPASSES = 2
	LDACHGEVALFRQ   = 10
	LDAPERPEVALFRQ  = 10
	LDAPERPTOL      = 1e-2
	LDATOPN         = 10

	// classification
	NEWSGROUPURL   = "https://ndownloader.figshare.com/files/5975967"
	NEWSGROUPTGZ   = "20news-bydate.tar.gz"
	NEWSGROUPCATS  = "alt.atheism,soc.religion.christian,comp.graphics,sci.med"
	NEWSGROUPSTRIP = "headers,footers,quotes"
	NEWSGROUPWAIT  = 300 // seconds
	CLSCOMPONENTS  = 100
	CLSALPHA       = 1e-4
	CLSEPOCHS      = 10
	CLSVARSMOOTH   = 1e-9
	CLSSEED        = 42

	// char rnn
	CHARMAXLEN   = 40
	CHARSTEP     = 3
	CHARHIDDEN   = 128
	CHARBATCH    = 128
	CHAREPOCHS   = 60
	CHARLR       = 0.01
	CHARRHO      = 0.9
	CHAREPSILON  = 1e-7
	CHARCLIP     = 5.0
	CHARGENLEN   = 400
	CHARSEED     = 7
	CHARCKPREFIX = "charnn"

	// word2vec
	VECTORNEIGHBORS = 10
	VECTORPROBES    = 3
)

var CharDiversities = []float64{0.2, 0.5, 1.0, 1.2}
