package commitgraph

import "errors"

// Validation errors for graph operations. The error text is the exact line
// the command surface prints, so it is never rewrapped or rephrased.
var (
	ErrFileMissing         = errors.New("File does not exist.")
	ErrNoChanges           = errors.New("No changes added to the commit.")
	ErrEmptyMessage        = errors.New("Please enter a commit message.")
	ErrNotTracked          = errors.New("No reason to remove the file.")
	ErrNoSuchCommit        = errors.New("No commit with that id exists.")
	ErrFileNotInCommit     = errors.New("File does not exist in that commit.")
	ErrNoSuchBranch        = errors.New("No such branch exists.")
	ErrBranchMissing       = errors.New("A branch with that name does not exist.")
	ErrBranchExists        = errors.New("A branch with that name already exists.")
	ErrRemoveCurrentBranch = errors.New("Cannot remove the current branch.")
	ErrCheckoutCurrent     = errors.New("No need to checkout the current branch.")
	ErrUntrackedInTheWay   = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrNoCommitForMessage  = errors.New("Found no commit with that message.")
)
