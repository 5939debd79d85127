package savedata

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataFile is the name of the payload file inside a slot directory.
const DataFile = "DATA.BIN"

// SlotNames returns the names of a count-slot namespace: "0000", "0001", ...
func SlotNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%04d", i)
	}
	return names
}

// SlotDir is the directory a slot occupies under root.
func SlotDir(root, gameName, slot string) string {
	return filepath.Join(root, gameName+slot)
}

// SlotPath is the payload file of a slot.
func SlotPath(root, gameName, slot string) string {
	return filepath.Join(SlotDir(root, gameName, slot), DataFile)
}

// PopulatedSlots returns, in namespace order, the slots whose payload file
// exists under root.
func PopulatedSlots(root, gameName string, slots []string) []string {
	var found []string
	for _, slot := range slots {
		info, err := os.Stat(SlotPath(root, gameName, slot))
		if err != nil || info.IsDir() {
			continue
		}
		found = append(found, slot)
	}
	return found
}
