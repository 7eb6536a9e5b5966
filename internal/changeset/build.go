package changeset

import (
	"mdproof/internal/gitscope"
	"mdproof/internal/markdown"
	"mdproof/internal/sentence"
)

// Build enumerates every eligible sentence of docs in file order, block
// order, then sentence order, and assigns each a unique address. When scope
// is non-nil, blocks whose content lines do not overlap any changed range of
// their document are skipped before segmentation.
func Build(docs []*markdown.Document, scope *gitscope.Scope) []ChangeRecord {
	var records []ChangeRecord
	for _, doc := range docs {
		ordinal := 0
		for _, blk := range doc.Blocks {
			if !blk.Kind.Reviewable() {
				continue
			}
			if scope != nil && !scope.Overlaps(doc.Path, blk.StartLine, blk.EndLine) {
				continue
			}
			sc := sentence.NewScanner(doc.Text(blk))
			for sc.Next() {
				addr := Address{File: doc.Path, Index: ordinal}
				records = append(records, ChangeRecord{
					Label:    addr.Label(),
					File:     doc.Path,
					Index:    ordinal,
					Original: sc.Text(),
					Decision: DecisionPending,
				})
				ordinal++
			}
		}
	}
	return records
}
