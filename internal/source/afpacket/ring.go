package afpacket

import "fmt"

// ringGeometry derives the AF_PACKET ring layout from a memory budget.
//
// PACKET_MMAP constraints:
//   - frameSize is a multiple of TPACKET_ALIGNMENT (16 bytes)
//   - blockSize is a multiple of pageSize AND of frameSize
//   - blockSize * numBlocks approximates the budget in megabytes
//
// frameSize is shaped so it is either a whole number of pages or a
// power-of-two divisor of the page size; the larger of the two then serves
// as the allocation unit for blocks, which satisfies both divisibility
// constraints at once.
func ringGeometry(budgetMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	const tpacketAlignment = 16
	const tpacketHdrLen = 52 // TPACKET3_HDRLEN, approximate
	const maxBlockSize = 4 * 1024 * 1024

	if budgetMB <= 0 {
		return 0, 0, 0, fmt.Errorf("buffer size must be positive, got %dMB", budgetMB)
	}
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return 0, 0, 0, fmt.Errorf("page size must be a positive multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	// Frame holds the tpacket header plus the snapped packet.
	rawFrameSize := tpacketHdrLen + snapLen
	if rawFrameSize >= pageSize {
		frameSize = ((rawFrameSize + pageSize - 1) / pageSize) * pageSize
	} else {
		// Small frames round up to a power of two so whole pages divide
		// evenly into frames.
		frameSize = tpacketAlignment
		for frameSize < rawFrameSize {
			frameSize <<= 1
		}
	}

	unit := frameSize
	if unit < pageSize {
		unit = pageSize
	}

	// Largest whole number of units that fits the kernel's block ceiling.
	blockSize = (maxBlockSize / unit) * unit
	if blockSize < unit {
		blockSize = unit
	}

	numBlocks = budgetMB * 1024 * 1024 / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	return frameSize, blockSize, numBlocks, nil
}
