package model

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
)

// pseudoMountTypes are filesystem types that never hold user files
var pseudoMountTypes = map[string]bool{
	"proc": true, "sysfs": true, "devtmpfs": true, "devpts": true, "tmpfs": true,
	"cgroup": true, "cgroup2": true, "securityfs": true, "pstore": true, "debugfs": true,
	"tracefs": true, "configfs": true, "fusectl": true, "mqueue": true, "hugetlbfs": true,
	"bpf": true, "autofs": true, "binfmt_misc": true, "rpc_pipefs": true, "nsfs": true,
	"overlay": true, "squashfs": true, "ramfs": true, "efivarfs": true, "selinuxfs": true,
}

// parseMounts reads /proc/self/mounts formatted data and returns the mount
// points of real filesystems: "/" first, then the rest alphabetically.
func parseMounts(r io.Reader) []string {
	seen := make(map[string]bool)
	var points []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint := unescapeMountField(fields[1])
		fsType := fields[2]

		if pseudoMountTypes[fsType] {
			continue
		}
		if mountPoint == "/proc" || strings.HasPrefix(mountPoint, "/proc/") ||
			mountPoint == "/sys" || strings.HasPrefix(mountPoint, "/sys/") ||
			mountPoint == "/dev" || strings.HasPrefix(mountPoint, "/dev/") {
			continue
		}
		if seen[mountPoint] {
			continue
		}
		seen[mountPoint] = true
		points = append(points, mountPoint)
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i] == "/" {
			return points[j] != "/"
		}
		if points[j] == "/" {
			return false
		}
		return points[i] < points[j]
	})
	return points
}

// unescapeMountField decodes the octal escapes (\040 for space) used in mounts
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if n, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
