// Package gitdit implements a distributed issue tracker on top of a
// git repository. Issues and their messages are ordinary commits;
// lifecycle is tracked through a disciplined namespace of refs below
// dit/. All state is derivable from commits and refs: there is no
// database, no index and no server component.
//
// An issue is a tree of messages rooted at its initial message, whose
// commit id doubles as the issue id. Replies are commits whose first
// parent is the message replied to; additional parents express
// cross-references. A head ref marks the maintainer-blessed tip of an
// issue, leaf refs pin published messages against garbage collection.
//
// Messages are immutable once published. Issues are never closed by
// deleting refs; closure is expressed through a "Dit-status" trailer on
// a new message.
package gitdit
