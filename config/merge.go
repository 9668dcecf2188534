package config

// Tree is a parsed configuration document: string keys mapping to scalars,
// nested trees or sequences ([]any).
type Tree = map[string]any

// MergeReplacingSequences folds src onto dst and returns the result.
// At every key src wins. When both sides hold a mapping the two are merged
// recursively; when both sides hold a sequence the sequence from src replaces
// the one in dst as a whole. Neither input is modified.
func MergeReplacingSequences(dst, src Tree) Tree {
	return mergeTrees(dst, src, replaceSequences)
}

// MergeRecursive folds src onto dst without any sequence rule: mappings are
// merged recursively and sequences are merged index by index, so a shorter
// sequence in src only overwrites the leading elements of dst. Neither input
// is modified.
func MergeRecursive(dst, src Tree) Tree {
	return mergeTrees(dst, src, mergeSequences)
}

type sequenceMode int

const (
	replaceSequences sequenceMode = iota
	mergeSequences
)

func mergeTrees(dst, src Tree, mode sequenceMode) Tree {
	out := make(Tree, len(dst)+len(src))

	for key, value := range dst {
		out[key] = cloneValue(value)
	}

	for key, value := range src {
		existing, ok := out[key]
		if !ok {
			out[key] = cloneValue(value)

			continue
		}

		out[key] = mergeValue(existing, value, mode)
	}

	return out
}

func mergeValue(existing, incoming any, mode sequenceMode) any {
	switch in := incoming.(type) {
	case Tree:
		if cur, ok := existing.(Tree); ok {
			return mergeTrees(cur, in, mode)
		}

		return cloneValue(in)
	case []any:
		cur, ok := existing.([]any)
		if !ok || mode == replaceSequences {
			return cloneValue(in)
		}

		return mergeSlices(cur, in)
	default:
		return incoming
	}
}

func mergeSlices(dst, src []any) []any {
	size := max(len(dst), len(src))
	out := make([]any, size)

	for i := range size {
		switch {
		case i >= len(src):
			out[i] = cloneValue(dst[i])
		case i >= len(dst):
			out[i] = cloneValue(src[i])
		default:
			out[i] = mergeValue(dst[i], src[i], mergeSequences)
		}
	}

	return out
}

// Clone returns a deep copy of tree.
func Clone(tree Tree) Tree {
	if tree == nil {
		return Tree{}
	}

	out, _ := cloneValue(tree).(Tree)

	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Tree:
		out := make(Tree, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}

		return out
	default:
		return value
	}
}
