// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// tagPrefixes are the known translation-key namespaces that legacy content
// carried in front of tag keys. Stored tags are always prefix-free.
var tagPrefixes = []string{
	"archives.tag ",
	"blog posts.tag ",
}

// CleanTagKey maps a possibly-namespaced tag key to its storage-canonical,
// prefix-free form. A key carrying exactly one known prefix has it removed;
// anything else is returned unchanged. The function is pure, total and
// idempotent.
func CleanTagKey(tag string) string {
	for _, prefix := range tagPrefixes {
		if strings.HasPrefix(tag, prefix) {
			return tag[len(prefix):]
		}
	}
	return tag
}

// CleanTagKeys normalizes a slice of tag keys, dropping entries that become
// empty after cleaning.
func CleanTagKeys(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		cleaned := strings.TrimSpace(CleanTagKey(t))
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
