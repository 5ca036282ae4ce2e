//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Hipparchia NLP Notebook"
	SHORTNAME = "HNB"
	VERSION   = "0.2.1"

	BLACKANDWHITE       = false
	CHARTOUTPUTDIR      = "hnb-output"
	CHECKPOINTDIR       = "hnb-checkpoints"
	CONFIGLOCATION      = "."
	CONFIGALTAPTH       = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC         = "hnb-conf.json"
	DATAHOMEDIR         = "hnb-data"
	DEFAULTDEMO         = "all"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 2
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "hippa_wr"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "hipparchiaDB"
	JSONINDENT          = "  "
	MAXINPUTLEN         = 1 << 20 // bytes of text accepted by POST /annotate
	MODELSTOREFS        = "fs"
	MODELSTORESQLITE    = "sqlite"
	MODELSTOREPG        = "pgsql"
	MODELSTOREDEFAULT   = MODELSTOREFS
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8000
	SQLITEFILE          = "hnb-models.sqlite"
	TIMEOUTRD           = 15 * time.Second
	TIMEOUTWR           = 120 * time.Second
	WRITEPERMS          = 0644
	DIRPERMS            = 0755
	WSPOLLINGPAUSE      = 10000000 * 10 // 10000000 * 10 = every .1s
)

// web surface
const (
	MAXECHOREQPERSECONDPERIP = 60
	RUNSKEPT                 = 100 // finished runs beyond this are forgotten, oldest first
	WSIDWAIT                 = 1 * time.Second
)

// the demos that can be requested with "-dm" or via "/run/:demo"
const (
	DEMOANNOTATE = "annotate"
	DEMOTOPICS   = "topics"
	DEMOCLASSIFY = "classify"
	DEMOGENERATE = "generate"
	DEMOEMBED    = "embed"
	DEMOALL      = "all"
)

var KnownDemos = []string{DEMOANNOTATE, DEMOTOPICS, DEMOCLASSIFY, DEMOGENERATE, DEMOEMBED, DEMOALL}
