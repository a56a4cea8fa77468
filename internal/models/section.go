// ABOUTME: Section represents one level-2-headed slice of a converted document
// ABOUTME: Produced by the markdown splitter, consumed by the SOTR builder
package models

import "strings"

// Section is a contiguous run of document content grouped under a level-2
// heading. ID is the first whitespace-delimited token of that heading's text
// (e.g. heading "3.2 Technical Requirements" yields ID "3.2").
type Section struct {
	ID           string `json:"id"`
	HeadingLevel int    `json:"heading_level"`
	Heading      string `json:"heading"`
	Content      string `json:"content"`
}

// IsEmpty reports whether the section carries no extractable content
func (s Section) IsEmpty() bool {
	return strings.TrimSpace(s.Content) == ""
}
