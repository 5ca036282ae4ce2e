//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BlackAndWhite bool
	CheckpointDir string // the "fs" model store lives here
	CorpusFile    string // "" means the bundled sample
	DataHome      string
	Demo          string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Epochs        int // 0 means "whatever hnb-conf-charnn.json says"
	HostIP        string
	HostPort      int
	LogLevel      int
	ManualGC      bool // see Msg.LogPaths()
	ModelStore    string
	OutputDir     string
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	QuietStart    bool
	RemoteAnnot   string
	Resume        bool
	Serve         bool
	SQLiteFile    string
	WorkerCount   int

	// flags that were actually typed on the command line
	Given map[string]bool `json:"-"`
}

// OnCLI - was this flag given on the command line (as opposed to arriving via a default or a config file)
func (c CurrentConfiguration) OnCLI(flag string) bool {
	return c.Given[flag]
}
