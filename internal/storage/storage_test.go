package storage

import (
	"strings"
	"testing"
)

func TestHashLink(t *testing.T) {
	a := hashLink("https://example.com/world/1")
	b := hashLink("https://example.com/world/1")
	c := hashLink("https://example.com/world/2")

	if a != b {
		t.Fatalf("same link must hash to same id: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("different links must not collide: %s", a)
	}
	// sha1 十六进制固定 40 位，落在 varchar(40) 主键里
	if len(a) != 40 {
		t.Fatalf("hash length = %d, want 40", len(a))
	}
	if strings.ToLower(a) != a {
		t.Fatalf("hash should be lowercase hex: %s", a)
	}
}

func TestTruncateRunesDB(t *testing.T) {
	if got := truncateRunesDB("  padded  ", 100); got != "padded" {
		t.Fatalf("should trim spaces, got %q", got)
	}
	if got := truncateRunesDB("abcdef", 4); got != "abcd" {
		t.Fatalf("truncate = %q, want abcd", got)
	}
	// 多字节字符按 rune 截断
	if got := truncateRunesDB("ニュース速報", 3); got != "ニュー" {
		t.Fatalf("multibyte truncate = %q", got)
	}
	if got := truncateRunesDB("anything", 0); got != "" {
		t.Fatalf("limit 0 should return empty, got %q", got)
	}
}

func TestToValidUTF8(t *testing.T) {
	if got := toValidUTF8("plain ascii"); got != "plain ascii" {
		t.Fatalf("valid string changed: %q", got)
	}
	// 0xff 不是合法 UTF-8 字节，替换为 �
	broken := string([]byte{'a', 0xff, 'b'})
	got := toValidUTF8(broken)
	if got != "a�b" {
		t.Fatalf("invalid byte not replaced: %q", got)
	}
}
