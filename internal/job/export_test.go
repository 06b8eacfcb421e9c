// SPDX-License-Identifier: MIT

package job

import "sort"

// OpNames lists every registered op in lexical order.
func OpNames() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Arity returns the argument count of op.
func Arity(op string) int { return handlers[op].arity }
