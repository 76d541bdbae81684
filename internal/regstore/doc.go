// Package regstore reads and writes values below a single registry key.
//
// Store abstracts the registry so the reconciliation flow can run against the
// Windows registry (Open) or an in-memory tree (NewMemory) in tests and on
// other platforms. Patcher layers the displaysync write rules on top: a value
// is only ever overwritten, never created, and its storage kind is preserved
// except for RefreshRate, which is always stored as a DWORD.
package regstore
