package layout

// 单调矩阵列最小值搜索（SMAWK 及其在线变体）。
// 矩阵从不实体化：每个元素通过回调按需计算。

// minimum 是某一列的最小值及其所在行。
type minimum struct {
	row  int
	cost int64
}

// cellFunc 返回矩阵元素 (i, j)，i < j。minima 为已完成的列，只读。
type cellFunc func(minima []minimum, i, j int) int64

// onlineColumnMinima 求 size×size 上三角矩阵每一列的最小值，第 j 列的元素可以依赖前 j 列的结果。
// 要求矩阵是完全单调的，摊还 O(size) 次求值。第 0 列的值为 initial。
// 值相同时取较小的行。
func onlineColumnMinima(initial int64, size int, cell cellFunc) []minimum {
	result := make([]minimum, 1, size)
	result[0] = minimum{row: 0, cost: initial}
	if size <= 1 {
		return result
	}

	finished, base, tentative := 0, 0, 0
	m := func(i, j int) int64 { return cell(result[:finished+1], i, j) }

	var (
		rows, cols []int
		scratch    []int
	)
	for finished < size-1 {
		i := finished + 1

		// 已越过上一次的试探区：对 base 之下能放下的最大方阵做一次 SMAWK。
		if i > tentative {
			rows = rows[:0]
			for r := base; r <= finished; r++ {
				rows = append(rows, r)
			}
			tentative = min(finished+len(rows), size-1)
			cols = cols[:0]
			for c := finished + 1; c <= tentative; c++ {
				cols = append(cols, c)
			}
			if cap(scratch) < len(cols) {
				scratch = make([]int, len(cols))
			}
			argmin := scratch[:len(cols)]
			smawk(m, rows, cols, cols[0], argmin)
			for k, col := range cols {
				row := argmin[k]
				v := m(row, col)
				if col >= len(result) {
					result = append(result, minimum{row: row, cost: v})
				} else if v < result[col].cost {
					result[col] = minimum{row: row, cost: v}
				}
			}
			finished = i
			continue
		}

		// 新的列最小值落在对角线上：更高的行不再有用。
		if diag := m(i-1, i); diag < result[i].cost {
			result[i] = minimum{row: i - 1, cost: diag}
			base, tentative, finished = i-1, i, i
			continue
		}

		// 第 i-1 行在 tentative 之前都不提供列最小值。
		if m(i-1, tentative) >= result[tentative].cost {
			finished = i
			continue
		}

		// tentative 处出现新的最小值，之前的行并入 base。
		base, tentative, finished = i-1, i, i
	}
	return result
}

// smawk 求 rows×cols 子矩阵每一列的最小行，写入 argmin[col-offset]。
// rows 与 cols 均升序。
func smawk(m func(i, j int) int64, rows, cols []int, offset int, argmin []int) {
	if len(cols) == 0 {
		return
	}

	// REDUCE：每列至多保留一行候选。
	stack := make([]int, 0, len(cols))
	for _, r := range rows {
		for len(stack) > 0 {
			c := cols[len(stack)-1]
			if m(stack[len(stack)-1], c) <= m(r, c) {
				break
			}
			stack = stack[:len(stack)-1]
		}
		if len(stack) < len(cols) {
			stack = append(stack, r)
		}
	}
	rows = stack

	odd := make([]int, 0, len(cols)/2)
	for k := 1; k < len(cols); k += 2 {
		odd = append(odd, cols[k])
	}
	smawk(m, rows, odd, offset, argmin)

	// 偶数列的最小行夹在相邻奇数列的最小行之间。
	r := 0
	for k := 0; k < len(cols); k += 2 {
		col := cols[k]
		last := rows[len(rows)-1]
		if k+1 < len(cols) {
			last = argmin[cols[k+1]-offset]
		}
		best, bestRow := m(rows[r], col), rows[r]
		for rows[r] != last {
			r++
			if v := m(rows[r], col); v < best {
				best, bestRow = v, rows[r]
			}
		}
		argmin[col-offset] = bestRow
	}
}
