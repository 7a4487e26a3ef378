package classifier

import (
	"fmt"
	"testing"
)

func TestResponseCachePutGet(t *testing.T) {
	c := newResponseCache(4)

	notes := []Note{{CleanedText: "t", Category: "General", ConfidenceScore: 0.9}}
	c.put("k1", notes)

	got, ok := c.get("k1")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 1 || got[0].CleanedText != "t" {
		t.Errorf("got %+v", got)
	}

	if _, ok := c.get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestResponseCacheEvictsOldest(t *testing.T) {
	c := newResponseCache(3)

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("k%d", i)
		c.put(key, []Note{{CleanedText: key, Category: "General"}})
	}

	if c.len() != 3 {
		t.Fatalf("len: got %d, want 3", c.len())
	}
	if _, ok := c.get("k0"); ok {
		t.Error("oldest entry should be evicted")
	}
	for _, key := range []string{"k1", "k2", "k3"} {
		if _, ok := c.get(key); !ok {
			t.Errorf("entry %s should survive", key)
		}
	}
}

func TestResponseCacheOverwriteDoesNotEvict(t *testing.T) {
	c := newResponseCache(2)

	c.put("k1", []Note{{CleanedText: "v1", Category: "General"}})
	c.put("k2", []Note{{CleanedText: "v2", Category: "General"}})
	c.put("k1", []Note{{CleanedText: "v3", Category: "General"}})

	if c.len() != 2 {
		t.Fatalf("len: got %d, want 2", c.len())
	}
	got, ok := c.get("k1")
	if !ok || got[0].CleanedText != "v3" {
		t.Errorf("k1: got %+v, ok %v", got, ok)
	}
	if _, ok := c.get("k2"); !ok {
		t.Error("k2 should survive an overwrite of k1")
	}
}
