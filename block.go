package blocklib

import (
	"slices"
	"strings"
)

// SectionMetadataBlock is the block that carries section-level metadata.
// It is never harvested as a library block but is kept next to blocks
// when their layout context is preserved.
const SectionMetadataBlock = "section-metadata"

// LibraryMetadataBlock is the block appended to every reconstructed section
// to record the variant's display name.
const LibraryMetadataBlock = "Library Metadata"

// IgnoredBlocks lists structural blocks that are not user-facing content.
var IgnoredBlocks = []string{SectionMetadataBlock}

// IsIgnoredBlock reports whether name is a structural block that must not
// be harvested.
func IsIgnoredBlock(name string) bool {
	return slices.Contains(IgnoredBlocks, name)
}

// BlockInstance is a single occurrence of a block on a published page.
type BlockInstance struct {
	BlockName string   `json:"blockName"`
	SourceURL string   `json:"sourceUrl"`
	Variants  []string `json:"variants"`

	// SectionHTML is the inner markup of the block's parent section, so the
	// instance carries its surrounding structural context.
	SectionHTML string `json:"sectionHtml"`
}

// AggregatedBlocks maps block names to all of their instances.
// Names keep the order in which they were first added.
// It is not safe for concurrent use.
type AggregatedBlocks struct {
	names     []string
	instances map[string][]*BlockInstance
}

// NewAggregatedBlocks returns an empty AggregatedBlocks.
func NewAggregatedBlocks() *AggregatedBlocks {
	return &AggregatedBlocks{instances: make(map[string][]*BlockInstance)}
}

// Add appends instances to the lists of their block names.
func (a *AggregatedBlocks) Add(instances ...*BlockInstance) {
	for _, inst := range instances {
		if _, ok := a.instances[inst.BlockName]; !ok {
			a.names = append(a.names, inst.BlockName)
		}
		a.instances[inst.BlockName] = append(a.instances[inst.BlockName], inst)
	}
}

// Merge appends every instance of other, block by block, in other's order.
func (a *AggregatedBlocks) Merge(other *AggregatedBlocks) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		a.Add(other.instances[name]...)
	}
}

// Names returns block names in first-encounter order.
func (a *AggregatedBlocks) Names() []string {
	return slices.Clone(a.names)
}

// Instances returns the instances recorded for name in insertion order.
func (a *AggregatedBlocks) Instances(name string) []*BlockInstance {
	return a.instances[name]
}

// Len returns the number of distinct block names.
func (a *AggregatedBlocks) Len() int {
	return len(a.names)
}

// VariantRecord is the selected representative of one block variant.
type VariantRecord struct {
	// Name is the display name: the block name for the base form,
	// "name (variant)" otherwise.
	Name string `json:"name"`

	// InstanceVariants are all variant labels of the backing instance.
	InstanceVariants []string `json:"instanceVariants"`

	// Variant is the label this record represents, empty for the base form.
	Variant string `json:"variant"`

	SourceURL   string `json:"sourceUrl"`
	SectionHTML string `json:"sectionHtml"`
}

// ClassList returns the class token sequence of the backing block element.
func (v *VariantRecord) ClassList(blockName string) []string {
	return append([]string{blockName}, v.InstanceVariants...)
}

// ReducedBlock is a block with one representative per distinct variant.
type ReducedBlock struct {
	Name     string           `json:"name"`
	Variants []*VariantRecord `json:"variants"`
}

// LibraryEntry is one row of the library index.
type LibraryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ParseClassList splits a class attribute into its tokens.
// Runs of whitespace separate tokens; empty tokens are never returned.
func ParseClassList(class string) []string {
	return strings.Fields(class)
}

// ClassName converts a block name into a file-safe identifier: lower-cased,
// every run of non-alphanumeric characters collapsed into a single hyphen,
// no leading or trailing hyphen.
func ClassName(name string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return sb.String()
}
