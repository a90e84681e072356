// 2 Sep 2024
/*

camaps reads every .pdb file in a directory, takes chain A of the first
model, calculates the distances between all pairs of alpha carbons and
cuts the matrix into square blocks along the diagonal. All the blocks for
one block size go into one hdf5 file as a dataset called "data" with
shape (nblock, res, res).

Usage:
 camaps [options]

Flags:
  -64, -128, -256, -512
	Block sizes to make. Each one gives a file called <res>aa.hdf5.
	With none of them, 128 is used.
  -mode train|test
	Only used to pick the default directories.
  -i dir
	Input directory. Default ../pdb-database/pdb_<mode>
  -o dir
	Output directory, created if necessary. Default <mode>_dataset
  -z	gzip compress the dataset
  -p N	number of files to work on at once. Default is the number of CPUs.
  -strict
	Stop on a broken ATOM record instead of skipping it.
  -l filename
	Write parser warnings here. "stdout" is standard output.
  -png	Also write <res>aa.png, a picture of the first block.

An output file which exists and is bigger than 10 000 bytes is not
touched, so you can stop and restart a run over several block sizes.

For a chain of n residues with alpha carbons, you get n/res - 1 blocks.
The last full block at the end of the chain is not used.

If any structure is broken or lacks chain A, that block size fails and
nothing is written for it. If no structure is long enough to give a
block, that is also an error.

*/
package main
