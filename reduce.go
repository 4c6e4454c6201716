package blocklib

// ReduceBlocks selects one representative instance per block variant.
//
// For every block the base form and each variant label are backed by the
// instance with the fewest total variant labels among the instances that
// qualify; on equal counts the earliest instance wins. Blocks are returned
// in the aggregate's name order and variants in the order their label was
// first selected, base form first.
func ReduceBlocks(agg *AggregatedBlocks) []*ReducedBlock {
	if agg == nil {
		return nil
	}

	reduced := make([]*ReducedBlock, 0, agg.Len())
	for _, name := range agg.Names() {
		reduced = append(reduced, reduceBlock(name, agg.Instances(name)))
	}
	return reduced
}

func reduceBlock(name string, instances []*BlockInstance) *ReducedBlock {
	selected := make(map[string]*BlockInstance)
	var order []string

	choose := func(label string, inst *BlockInstance) {
		current, ok := selected[label]
		if !ok {
			order = append(order, label)
			selected[label] = inst
			return
		}
		if len(inst.Variants) < len(current.Variants) {
			selected[label] = inst
		}
	}

	for _, inst := range instances {
		choose("", inst)
		for _, variant := range inst.Variants {
			choose(variant, inst)
		}
	}

	block := &ReducedBlock{
		Name:     name,
		Variants: make([]*VariantRecord, 0, len(order)),
	}
	for _, label := range order {
		inst := selected[label]
		block.Variants = append(block.Variants, &VariantRecord{
			Name:             DisplayName(name, label),
			InstanceVariants: inst.Variants,
			Variant:          label,
			SourceURL:        inst.SourceURL,
			SectionHTML:      inst.SectionHTML,
		})
	}
	return block
}

// DisplayName returns the library name of a block variant.
func DisplayName(blockName, variant string) string {
	if variant == "" {
		return blockName
	}
	return blockName + " (" + variant + ")"
}
