//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package demo

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/lnch"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/store"
	"github.com/e-gun/HipparchiaNLPNotebook/internal/vv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var harbour = []string{
	"The fishing boats left the harbour before dawn",
	"Nets and ropes were piled along the harbour wall",
	"The fishermen mended their nets beside the boats",
	"Gulls followed the boats back into the harbour",
}

var garden = []string{
	"The garden beds were full of beans and onions",
	"She dug compost into the garden soil each spring",
	"Onions and beans grew well in the dark soil",
	"The old gardener watered the beans every evening",
}

func sampletext() string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		for j := range harbour {
			sb.WriteString(harbour[j] + ". ")
			sb.WriteString(garden[j] + ". ")
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

type recorder struct {
	mu     sync.Mutex
	stages []string
}

func (r *recorder) Report(stage, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage+": "+msg)
}

func (r *recorder) has(prefix string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stages {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func newsarchive(t *testing.T, dir string) {
	posts := map[string][]string{
		"sci.space": {"rockets orbit the moon", "the shuttle reached orbit", "planets orbit the sun", "a rocket launch to the moon", "orbit of mars and moon", "the astronaut saw planets"},
		"sci.med":   {"doctors treat the patient", "the nurse gave medicine", "a patient saw the doctor", "medicine for the fever", "the clinic hired nurses", "doctors prescribe medicine"},
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(zw)
	for cat, pp := range posts {
		for i, body := range pp {
			split := "20news-bydate-train"
			if i >= 4 {
				split = "20news-bydate-test"
			}
			name := fmt.Sprintf("%s/%s/%d", split, cat, i)
			require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
			_, err := tw.Write([]byte(body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, zw.Close())
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, vv.NEWSGROUPTGZ), buf.Bytes(), 0644))
}

func testenv(t *testing.T) Env {
	root := t.TempDir()
	fn := filepath.Join(root, "twoplaces.txt")
	require.NoError(t, os.WriteFile(fn, []byte(sampletext()), 0644))

	cfg := *lnch.BuildDefaultConfig()
	cfg.CorpusFile = fn
	cfg.CheckpointDir = filepath.Join(root, "ck")
	cfg.DataHome = filepath.Join(root, "data")
	cfg.OutputDir = filepath.Join(root, "out")
	cfg.WorkerCount = 2

	s := Override(DefaultSettings(cfg), cfg)
	s.Annot.Lemmatise = false
	s.BOW.SentencesPerBag = 1
	s.BOW.KeepPOS = nil
	s.BOW.NoBelow = 1
	s.BOW.NoAbove = 1.0
	s.BOW.PhraseMinCount = 2
	s.LDA.Topics = 2
	s.LDA.Iterations = 20
	s.LDA.GraphDocs = true

	s.Classify.Newsgroups.Categories = []string{"sci.space", "sci.med"}
	s.Classify.Newsgroups.Remove = nil
	s.Classify.Model.Components = 3
	newsarchive(t, cfg.DataHome)

	s.CharNN.MaxLen = 5
	s.CharNN.Step = 7
	s.CharNN.Hidden = 8
	s.CharNN.BatchSize = 32
	s.CharNN.Epochs = 2
	s.CharNN.GenerateLen = 5
	s.CharNN.Diversities = []float64{0.5}

	s.Embed.W2V.Dim = 8
	s.Embed.W2V.Iter = 2
	s.Embed.W2V.MinCount = 1
	s.Embed.Probes = 2
	s.Embed.Neighbours = 2

	st, err := store.NewFS(cfg.CheckpointDir)
	require.NoError(t, err)
	return Env{Cfg: cfg, Set: s, Store: st}
}

func TestOverride(t *testing.T) {
	cfg := *lnch.BuildDefaultConfig()
	cfg.RemoteAnnot = "http://127.0.0.1:9/annotate"
	cfg.Epochs = 4
	cfg.WorkerCount = 3
	cfg.DataHome = "elsewhere"

	// values that only came from defaults leave the json settings alone
	fromjson := DefaultSettings(*lnch.BuildDefaultConfig())
	fromjson.LDA.Goroutines = 7
	fromjson.CharNN.Workers = 7
	fromjson.Classify.Newsgroups.DataHome = "jsonhome"
	s := Override(fromjson, cfg)
	assert.Equal(t, cfg.RemoteAnnot, s.Annot.Remote)
	assert.Equal(t, 4, s.CharNN.Epochs)
	assert.Equal(t, 7, s.LDA.Goroutines)
	assert.Equal(t, 7, s.CharNN.Workers)
	assert.Equal(t, "jsonhome", s.Classify.Newsgroups.DataHome)

	lnch.ParseArgs(&cfg, []string{"-wc", "3", "-dh", "elsewhere"})
	s = Override(fromjson, cfg)
	assert.Equal(t, 3, s.LDA.Goroutines)
	assert.Equal(t, 3, s.CharNN.Workers)
	assert.Equal(t, 3, s.Embed.W2V.Goroutines)
	assert.Equal(t, "elsewhere", s.Classify.Newsgroups.DataHome)

	cfg.Epochs = 0
	assert.Equal(t, vv.CHAREPOCHS, Override(DefaultSettings(cfg), cfg).CharNN.Epochs)
}

func TestCommonest(t *testing.T) {
	docs := [][]string{{"b", "a", "c"}, {"a", "b"}, {"a"}}
	assert.Equal(t, []string{"a", "b"}, commonest(docs, 2))
	assert.Equal(t, []string{"a", "b", "c"}, commonest(docs, 10))
	assert.Empty(t, commonest(docs, 0))
}

func TestRunUnknown(t *testing.T) {
	err := Run(context.Background(), "sentiment", Env{}, Discard, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown demo")
}

func TestAnnotate(t *testing.T) {
	env := testenv(t)
	var out bytes.Buffer
	rec := &recorder{}
	require.NoError(t, Annotate(context.Background(), env, rec, &out))
	assert.Contains(t, out.String(), "annotation of twoplaces/0")
	assert.Contains(t, out.String(), "harbour")
	assert.True(t, rec.has("annotate: loaded 'twoplaces'"))
}

func TestTopics(t *testing.T) {
	env := testenv(t)
	var out bytes.Buffer
	rec := &recorder{}
	require.NoError(t, Topics(context.Background(), env, rec, &out))
	assert.Contains(t, out.String(), "Topic model of the corpus")
	assert.True(t, rec.has("topics: 2 topics fitted"))
	assert.FileExists(t, filepath.Join(env.Cfg.OutputDir, "topics-twoplaces.html"))
}

func TestClassify(t *testing.T) {
	env := testenv(t)
	var out bytes.Buffer
	require.NoError(t, Classify(context.Background(), env, Discard, &out))
	assert.Contains(t, out.String(), "GaussianNB: accuracy")
	assert.Contains(t, out.String(), "LinearSVM: accuracy")
	assert.FileExists(t, filepath.Join(env.Cfg.OutputDir, "classify-GaussianNB.html"))

	names, err := env.Store.List(context.Background(), CLSPREFIX)
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestGenerateAndResume(t *testing.T) {
	env := testenv(t)
	ctx := context.Background()
	var out bytes.Buffer
	require.NoError(t, Generate(ctx, env, Discard, &out))
	assert.Contains(t, out.String(), "Generating text after epoch: 2")
	assert.FileExists(t, filepath.Join(env.Cfg.OutputDir, "generate-twoplaces.html"))

	env.Cfg.Resume = true
	env.Set.CharNN.Epochs = 3
	out.Reset()
	rec := &recorder{}
	require.NoError(t, Generate(ctx, env, rec, &out))
	assert.True(t, rec.has("generate: resuming from charnn-twoplaces"))
	assert.Contains(t, out.String(), "Generating text after epoch: 3")
	assert.NotContains(t, out.String(), "Generating text after epoch: 1\n")
}

func TestEmbed(t *testing.T) {
	env := testenv(t)
	var out bytes.Buffer
	require.NoError(t, Embed(context.Background(), env, Discard, &out))
	assert.Contains(t, out.String(), "Neighbour of")
}

func TestAllKeepsBranchOrder(t *testing.T) {
	env := testenv(t)
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), vv.DEMOALL, env, Discard, &out))
	s := out.String()
	a := strings.Index(s, "annotation of")
	c := strings.Index(s, "GaussianNB: accuracy")
	g := strings.Index(s, "Generating text after epoch")
	require.True(t, a >= 0 && c >= 0 && g >= 0)
	assert.Less(t, a, c)
	assert.Less(t, c, g)
}

func TestCancelled(t *testing.T) {
	env := testenv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, Generate(ctx, env, Discard, &bytes.Buffer{}))
}
