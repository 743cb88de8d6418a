package prefs

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/pkg/errors"
)

func TestTypedAccessDefaults(t *testing.T) {
	p := New(NewMemoryEngine())

	assert.Equal(t, 7, p.Int(KeyHighScore, 7))
	assert.Equal(t, 12.0, p.Float(KeyThrustPower, 12))
	assert.Equal(t, false, p.Bool(KeyMusicMuted, false))
	assert.Equal(t, false, p.Has(KeyHighScore))
}

func TestTypedAccessRoundTrip(t *testing.T) {
	p := New(NewMemoryEngine())

	assert.Equal(t, nil, p.SetInt(KeyHighScore, 42))
	assert.Equal(t, nil, p.SetFloat(KeyGravity, 3.25))
	assert.Equal(t, nil, p.SetBool(KeyEffectsMuted, true))

	assert.Equal(t, 42, p.Int(KeyHighScore, 0))
	assert.Equal(t, 3.25, p.Float(KeyGravity, 0))
	assert.Equal(t, true, p.Bool(KeyEffectsMuted, false))
	assert.Equal(t, true, p.Has(KeyHighScore))
}

func TestMalformedValueFallsBack(t *testing.T) {
	e := NewMemoryEngine()
	_ = e.Put(KeyHighScore, "lots")
	p := New(e)
	assert.Equal(t, 5, p.Int(KeyHighScore, 5))
}

func TestNamespaceIsolation(t *testing.T) {
	root := New(NewMemoryEngine())
	alice := root.Namespace("alice")
	bob := root.Namespace("bob")

	_ = alice.SetInt(KeyHighScore, 10)
	assert.Equal(t, 10, alice.Int(KeyHighScore, 0))
	assert.Equal(t, 0, bob.Int(KeyHighScore, 0))
	assert.Equal(t, 0, root.Int(KeyHighScore, 0))
}

type brokenEngine struct{}

func (brokenEngine) Get(string) (string, bool, error) { return "", false, errors.New("down") }
func (brokenEngine) Put(string, string) error         { return errors.New("down") }
func (brokenEngine) Close() error                     { return nil }

func TestEngineFailuresDegrade(t *testing.T) {
	p := New(brokenEngine{})
	assert.Equal(t, 3, p.Int(KeyHighScore, 3))
	assert.T(t, p.SetInt(KeyHighScore, 4) != nil, "write error must be returned")
}

func TestFileEnginePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.ini")

	e, err := OpenFileEngine(path)
	assert.Equal(t, nil, err)
	p := New(e)
	assert.Equal(t, nil, p.SetInt(KeyHighScore, 99))
	assert.Equal(t, nil, p.SetFloat(KeyThrustPower, 11.5))

	_, err = os.Stat(path)
	assert.Equal(t, nil, err)

	reopened, err := OpenFileEngine(path)
	assert.Equal(t, nil, err)
	p2 := New(reopened)
	assert.Equal(t, 99, p2.Int(KeyHighScore, 0))
	assert.Equal(t, 11.5, p2.Float(KeyThrustPower, 0))
}

func TestOpenDefaultsToMemory(t *testing.T) {
	p, err := Open(Options{})
	assert.Equal(t, nil, err)
	_, ok := p.engine.(*MemoryEngine)
	assert.T(t, ok, "expected memory engine")
}

func TestRedisEngine(t *testing.T) {
	addr := os.Getenv("VOYAGER_TEST_REDIS")
	if addr == "" {
		t.Skip("VOYAGER_TEST_REDIS not set")
	}
	e, err := OpenRedisEngine(addr, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	p := New(e).Namespace("test" + strconv.Itoa(os.Getpid()))
	assert.Equal(t, false, p.Has(KeyHighScore))
	assert.Equal(t, nil, p.SetInt(KeyHighScore, 17))
	assert.Equal(t, 17, p.Int(KeyHighScore, 0))
}
