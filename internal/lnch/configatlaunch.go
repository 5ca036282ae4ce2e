//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/str"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

var (
	Config = BuildDefaultConfig()
	Msg    = NewMessageMakerWithDefaults()
)

// ConfigDir - "~/.config/"
func ConfigDir() (string, error) {
	h, e := os.UserHomeDir()
	if e != nil {
		return "", errors.New("cannot find UserHomeDir")
	}
	return fmt.Sprintf(vv.CONFIGALTAPTH, h), nil
}

// LookForConfigFile - if there is no config file in "." or "~/.config/" write the default one to "~/.config/"
func LookForConfigFile() {
	const (
		MSG1 = "wrote default configuration file '%s'"
		FAIL = "LookForConfigFile() could not write '%s': %s"
	)
	if _, a := os.Stat(filepath.Join(vv.CONFIGLOCATION, vv.CONFIGBASIC)); a == nil {
		return
	}

	cd, e := ConfigDir()
	if e != nil {
		Msg.WARN(e.Error())
		return
	}
	fn := filepath.Join(cd, vv.CONFIGBASIC)
	if _, b := os.Stat(fn); b == nil {
		return
	}

	if err := writejson(fn, BuildDefaultConfig()); err != nil {
		Msg.WARN(fmt.Sprintf(FAIL, fn, err.Error()))
		return
	}
	Msg.NOTE(fmt.Sprintf(MSG1, fn))
}

// ConfigAtLaunch - read the configuration values from JSON and/or command line
func ConfigAtLaunch() {
	const (
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		MSG1  = "'%s'%s loaded"
	)

	Config = BuildDefaultConfig()

	fn := filepath.Join(vv.CONFIGLOCATION, vv.CONFIGBASIC)
	if _, e := os.Stat(fn); e != nil {
		if cd, err := ConfigDir(); err == nil {
			fn = filepath.Join(cd, vv.CONFIGBASIC)
		}
	}

	loaded, errc := readconfigfile(fn)
	if errc == nil {
		Config = loaded
	} else if !errors.Is(errc, os.ErrNotExist) {
		Msg.CRIT(fmt.Sprintf(FAIL3, fn))
	}

	ParseArgs(Config, os.Args[1:])
	UpdateMessageMakerWithConfig(Msg)

	y := ""
	if errc != nil {
		y = " *not*"
	}
	Msg.TMI(fmt.Sprintf(MSG1, fn, y))

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
	if Config.WorkerCount < 1 {
		Config.WorkerCount = 1
	}
}

// readconfigfile - decode a CurrentConfiguration on top of the defaults so that missing keys keep their default values
func readconfigfile(fn string) (*str.CurrentConfiguration, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := BuildDefaultConfig()
	if err = json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fn, err)
	}
	return cfg, nil
}

// ParseArgs - apply the command line flags to cfg; "-h", "-v", and "-vv" exit
func ParseArgs(cfg *str.CurrentConfiguration, args []string) {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"hipparchiaDB\" ,\"User\": \"hippa_wr\"}"`
		FAIL3 = "flag '%s' requires a value"
		FAIL4 = "unknown demo '%s'; available: %s"
		FAIL5 = "unknown model store '%s'; available: fs, sqlite, pgsql"
	)

	next := func(i int) string {
		if i+1 >= len(args) {
			Msg.EC(fmt.Errorf(FAIL3, args[i]))
		}
		return args[i+1]
	}

	nextint := func(i int) int {
		n, err := strconv.Atoi(next(i))
		Msg.EC(err)
		return n
	}

	if cfg.Given == nil {
		cfg.Given = make(map[string]bool)
	}

	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			cfg.Given[a] = true
		}
		switch a {
		case "-vv":
			PrintVersion(*cfg)
			PrintBuildInfo(*cfg)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-bw":
			cfg.BlackAndWhite = true
		case "-cf":
			cfg.CorpusFile = next(i)
		case "-ck":
			cfg.CheckpointDir = next(i)
		case "-dh":
			cfg.DataHome = next(i)
		case "-dm":
			d := next(i)
			if !slices.Contains(vv.KnownDemos, d) {
				Msg.EC(fmt.Errorf(FAIL4, d, strings.Join(vv.KnownDemos, ", ")))
			}
			cfg.Demo = d
		case "-el":
			cfg.EchoLog = nextint(i)
		case "-ep":
			cfg.Epochs = nextint(i)
		case "-gl":
			cfg.LogLevel = nextint(i)
		case "-h":
			help(*cfg)
		case "-mp":
			p := next(i)
			if p != vv.MODELSTOREFS && p != vv.MODELSTORESQLITE && p != vv.MODELSTOREPG {
				Msg.EC(fmt.Errorf(FAIL5, p))
			}
			cfg.ModelStore = p
		case "-ot":
			cfg.OutputDir = next(i)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pg":
			var pl str.PostgresLogin
			if err := json.Unmarshal([]byte(next(i)), &pl); err != nil {
				Msg.MAND(FAIL1)
				Msg.CRIT(FAIL2)
				continue
			}
			cfg.PGLogin = pl
		case "-pm":
			cfg.ProfileMEM = true
		case "-q":
			cfg.QuietStart = true
		case "-ra":
			cfg.RemoteAnnot = next(i)
		case "-rs":
			cfg.Resume = true
		case "-sa":
			cfg.HostIP = next(i)
		case "-sp":
			cfg.HostPort = nextint(i)
		case "-sv":
			cfg.Serve = true
		case "-wc":
			cfg.WorkerCount = nextint(i)
		default:
			// do nothing
		}
	}
}

func help(cfg str.CurrentConfiguration) {
	const (
		FAIL7 = "ConfigAtLaunch() failed to execute help text template"
	)
	PrintVersion(cfg)
	PrintBuildInfo(cfg)

	cd, _ := ConfigDir()
	corp := cfg.CorpusFile
	if corp == "" {
		corp = "(bundled sample)"
	}
	remote := cfg.RemoteAnnot
	if remote == "" {
		remote = "(local pipeline)"
	}

	m := map[string]interface{}{
		"ckdir":    cfg.CheckpointDir,
		"conffile": vv.CONFIGBASIC,
		"corpus":   corp,
		"cpus":     runtime.NumCPU(),
		"datahome": cfg.DataHome,
		"demo":     cfg.Demo,
		"demos":    strings.Join(vv.KnownDemos, "C0, C3"),
		"echoll":   cfg.EchoLog,
		"epochs":   cfg.Epochs,
		"hnbll":    cfg.LogLevel,
		"home":     cd,
		"host":     cfg.HostIP,
		"outdir":   cfg.OutputDir,
		"port":     cfg.HostPort,
		"projurl":  vv.PROJURL,
		"provider": cfg.ModelStore,
		"remote":   remote,
		"workers":  cfg.WorkerCount,
	}

	t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

	var b bytes.Buffer
	if ee := t.Execute(&b, m); ee != nil {
		Msg.CRIT(FAIL7)
	}
	fmt.Println(Msg.Styled(Msg.Color(b.String())))

	os.Exit(0)
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CheckpointDir = vv.CHECKPOINTDIR
	c.CorpusFile = ""
	c.DataHome = vv.DATAHOMEDIR
	c.Demo = vv.DEFAULTDEMO
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Epochs = 0
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ManualGC = false
	c.ModelStore = vv.MODELSTOREDEFAULT
	c.OutputDir = vv.CHARTOUTPUTDIR
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.RemoteAnnot = ""
	c.Resume = false
	c.Serve = false
	c.SQLiteFile = vv.SQLITEFILE
	c.WorkerCount = runtime.NumCPU()

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	return &c
}
