//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadOrWriteJSON - read a settings file from "~/.config/"; if it is not there write def to it and hand def back
func ReadOrWriteJSON[T any](fn string, def T) T {
	const (
		ERR1 = "ReadOrWriteJSON() cannot find UserHomeDir; using built-in defaults for %s"
		ERR2 = "ReadOrWriteJSON() failed to parse %s; using built-in defaults: %s"
		MSG1 = "wrote default configuration file "
		MSG2 = "read configuration from "
	)

	cd, e := ConfigDir()
	if e != nil {
		Msg.MAND(fmt.Sprintf(ERR1, fn))
		return def
	}

	v, wrote, err := readorwrite(filepath.Join(cd, fn), def)
	switch {
	case err != nil:
		Msg.CRIT(fmt.Sprintf(ERR2, fn, err.Error()))
		return def
	case wrote:
		Msg.PEEK(MSG1 + fn)
	default:
		Msg.PEEK(MSG2 + fn)
	}
	return v
}

// readorwrite - the file part of ReadOrWriteJSON; keys missing from the file keep their default values
func readorwrite[T any](path string, def T) (T, bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err = os.MkdirAll(filepath.Dir(path), vv.DIRPERMS); err != nil {
			return def, false, err
		}
		if err = writejson(path, def); err != nil {
			return def, false, err
		}
		return def, true, nil
	}
	if err != nil {
		return def, false, err
	}

	v := def
	if err = json.Unmarshal(content, &v); err != nil {
		return def, false, err
	}
	return v, false, nil
}

func writejson(path string, v any) error {
	content, err := json.MarshalIndent(v, vv.JSONINDENT, vv.JSONINDENT)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, vv.WRITEPERMS)
}
