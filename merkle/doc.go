package merkle

/*

# A sorted, pair-commutative merkle tree

This package builds the tree used to commit to a set of token ids so that any
subset can later be shown to be part of the set with a single multiproof. The
construction matches OpenZeppelin's StandardMerkleTree for a single bytes32
column, so roots and proofs produced here verify on chain with
MerkleProof.multiProofVerify, and the other way around.

# Layout

The tree is held as a flat array of 2n-1 nodes for n leaves. The root is at
index 0 and node i has children at 2i+1 and 2i+2:

	        0
	    1       2
	  3   4   5   6

Leaves occupy the last n slots. Before placement they are sorted ascending by
leaf hash and written from the end of the array backwards, so the smallest
leaf hash lands in the last slot. The tree is not necessarily complete: with
five leaves the slots 4 through 8 hold leaves and node 3 is an interior node
over 7 and 8.

# Hashing

A leaf is the hash of the hash of its 32 byte value. Interior nodes hash the
concatenation of their two children, smallest first. Because the pair is
sorted, a verifier never needs to know which side a sibling was on, and
because the leaves are sorted by hash, the root depends only on the set of
values, never on the order they were supplied in.

The hasher is passed in explicitly and is Reset before every use. Callers
wanting the on chain compatible form pass a legacy Keccak256 (see the keccak
package); any other 32 byte hash produces a self consistent tree.

# Multiproofs

GetMultiProof works on node indices, Tree.MultiProof on values. A multiproof
is the list of leaves being proven, the sibling hashes that cannot be derived
from them, and one flag per interior hash computed during verification.
ProcessMultiProof consumes them with two FIFO queues, see its documentation
for the exact order.

Leaves come back ordered for verification, which is descending node index,
not the order the caller asked for them in.

Proving no leaves yields a proof holding only the root, with no flags.
*/
