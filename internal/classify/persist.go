//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package classify

import (
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
)

type stored struct {
	Kind string
	NB   *GaussianNB `json:",omitempty"`
	SVM  *LinearSVM  `json:",omitempty"`
}

// Save - put a fitted classifier into the model store
func Save(ctx context.Context, st store.Store, fp string, c Classifier) error {
	const (
		FAIL = "Save(): cannot store a %T"
	)
	s := stored{Kind: c.Name()}
	switch v := c.(type) {
	case *GaussianNB:
		s.NB = v
	case *LinearSVM:
		s.SVM = v
	default:
		return fmt.Errorf(FAIL, c)
	}
	return st.Add(ctx, fp, s)
}

// Load - the inverse of Save; store.ErrNotFound passes through
func Load(ctx context.Context, st store.Store, fp string) (Classifier, error) {
	const (
		FAIL = "Load(): blob %s holds an unknown classifier '%s'"
	)
	var s stored
	if err := st.Fetch(ctx, fp, &s); err != nil {
		return nil, err
	}
	switch {
	case s.NB != nil:
		return s.NB, nil
	case s.SVM != nil:
		return s.SVM, nil
	default:
		return nil, fmt.Errorf(FAIL, fp, s.Kind)
	}
}
