// Package action holds the registry of editing actions and the static
// per-mode command trees.
//
// A Def carries only the metadata the interpreter needs: the argument the
// action still requires (character, motion, digraph, ex string), whether it
// mutates the surface, and operator bookkeeping such as the doubled-key
// linewise variant. The behavior behind an action name belongs to the
// execution collaborator.
package action
