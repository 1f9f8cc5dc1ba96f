package layout

import "math"

// constraint is an available size on one axis together with its mode.
type constraint struct {
	size float64
	mode MeasureMode
}

var unconstrained = constraint{size: Undefined, mode: MeasureUndefined}

func exactly(v float64) constraint {
	if IsUndefined(v) {
		return unconstrained
	}
	return constraint{size: math.Max(v, 0), mode: MeasureExactly}
}

func atMost(v float64) constraint {
	if IsUndefined(v) {
		return unconstrained
	}
	return constraint{size: math.Max(v, 0), mode: MeasureAtMost}
}

type cacheKey struct {
	h              Handle
	w, h2          float64
	wMode, hMode   MeasureMode
	ownerW, ownerH float64
}

type measured struct {
	w, h float64
}

func keyFloat(v float64) float64 {
	if IsUndefined(v) {
		return -1
	}
	return v
}

func newCacheKey(h Handle, cw, ch constraint, ownerW, ownerH float64) cacheKey {
	return cacheKey{
		h:      h,
		w:      keyFloat(cw.size),
		h2:     keyFloat(ch.size),
		wMode:  cw.mode,
		hMode:  ch.mode,
		ownerW: keyFloat(ownerW),
		ownerH: keyFloat(ownerH),
	}
}

// flexItem is the per-child working state of one container pass.
type flexItem struct {
	h           Handle
	style       Style
	mainMargin  float64
	crossMargin float64
	basis       float64
	hyp         float64
	main        float64
	cross       float64
	crossFixed  bool
}

// Calculate lays out the tree rooted at root. Width and height are the
// available size; pass Undefined for an unconstrained axis. The whole tree is
// recomputed on every call. A non-finite result yields a *GeometryError.
func (e *Engine) Calculate(root Handle, width, height float64) error {
	n := e.get(root)
	if n == nil {
		return ErrInvalidHandle
	}
	e.cache = make(map[cacheKey]measured)
	defer func() { e.cache = nil }()

	if n.style.Display == DisplayNone {
		e.zeroSubtree(root)
		return nil
	}

	w, h := e.layoutNode(root, exactly(width), exactly(height), width, height, true)
	n.layout = Layout{
		Left:   float64(n.style.Margin.Left),
		Top:    float64(n.style.Margin.Top),
		Width:  w,
		Height: h,
	}
	return e.validate(root)
}

func (e *Engine) zeroSubtree(h Handle) {
	n := e.get(h)
	if n == nil {
		return
	}
	n.layout = Layout{}
	for _, c := range n.children {
		e.zeroSubtree(c)
	}
}

func (e *Engine) validate(h Handle) error {
	n := e.get(h)
	if n == nil || n.style.Display == DisplayNone {
		return nil
	}
	fields := [...]struct {
		name string
		v    *float64
	}{
		{"left", &n.layout.Left},
		{"top", &n.layout.Top},
		{"width", &n.layout.Width},
		{"height", &n.layout.Height},
	}
	for _, f := range fields {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return &GeometryError{Handle: h, Field: f.name, Value: *f.v}
		}
	}
	if n.layout.Width < 0 {
		n.layout.Width = 0
	}
	if n.layout.Height < 0 {
		n.layout.Height = 0
	}
	for _, c := range n.children {
		if err := e.validate(c); err != nil {
			return err
		}
	}
	return nil
}

func paddingBorder(s Style, horizontal bool) float64 {
	if horizontal {
		return float64(s.Padding.Horizontal() + s.Border.Horizontal())
	}
	return float64(s.Padding.Vertical() + s.Border.Vertical())
}

// bound clamps v to the node's min/max constraints on one axis and never
// below its padding and border.
func bound(s Style, horizontal bool, v, owner float64) float64 {
	minV, maxV := s.MinHeight, s.MaxHeight
	if horizontal {
		minV, maxV = s.MinWidth, s.MaxWidth
	}
	if mx, ok := maxV.Resolve(owner); ok && v > mx {
		v = mx
	}
	if mn, ok := minV.Resolve(owner); ok && v < mn {
		v = mn
	}
	return math.Max(v, paddingBorder(s, horizontal))
}

func ownSize(v Value, c constraint, owner float64) (float64, bool) {
	if c.mode == MeasureExactly {
		return c.size, true
	}
	if r, ok := v.Resolve(owner); ok {
		return r, true
	}
	return Undefined, false
}

// inner derives the content-box constraint from a border-box size.
func inner(size float64, definite bool, c constraint, pb float64) constraint {
	if definite {
		return exactly(size - pb)
	}
	if c.mode == MeasureAtMost {
		return atMost(c.size - pb)
	}
	return unconstrained
}

func itemAlign(child Style, parent Align) Align {
	a := child.AlignSelf
	if a == AlignAuto {
		a = parent
	}
	if a == AlignAuto {
		a = AlignStretch
	}
	return a
}

// layoutNode sizes h under the given border-box constraints. When perform is
// true it also positions every descendant; otherwise the result is a pure
// measurement and is memoized for the current Calculate.
func (e *Engine) layoutNode(h Handle, cw, ch constraint, ownerW, ownerH float64, perform bool) (width, height float64) {
	if !perform {
		key := newCacheKey(h, cw, ch, ownerW, ownerH)
		if m, ok := e.cache[key]; ok {
			return m.w, m.h
		}
		defer func() { e.cache[key] = measured{width, height} }()
	}

	n := e.nodes[h]
	st := n.style
	pbW := paddingBorder(st, true)
	pbH := paddingBorder(st, false)

	width, widthDef := ownSize(st.Width, cw, ownerW)
	height, heightDef := ownSize(st.Height, ch, ownerH)
	if widthDef {
		width = bound(st, true, width, ownerW)
	}
	if heightDef {
		height = bound(st, false, height, ownerH)
	}

	if n.measure != nil && len(n.children) == 0 {
		ic := inner(width, widthDef, cw, pbW)
		mw, mh := n.measure(ic.size, ic.mode)
		if !widthDef {
			width = bound(st, true, mw+pbW, ownerW)
		}
		if !heightDef {
			height = bound(st, false, mh+pbH, ownerH)
		}
		return width, height
	}

	if len(n.children) == 0 {
		if !widthDef {
			width = bound(st, true, pbW, ownerW)
		}
		if !heightDef {
			height = bound(st, false, pbH, ownerH)
		}
		return width, height
	}

	isRow := st.Direction.isRow()
	iw := inner(width, widthDef, cw, pbW)
	ih := inner(height, heightDef, ch, pbH)
	childOwnerW, childOwnerH := Undefined, Undefined
	if iw.mode == MeasureExactly {
		childOwnerW = iw.size
	}
	if ih.mode == MeasureExactly {
		childOwnerH = ih.size
	}

	var items []flexItem
	var absolute []Handle
	for _, c := range n.children {
		cs := e.nodes[c].style
		if cs.Display == DisplayNone {
			if perform {
				e.zeroSubtree(c)
			}
			continue
		}
		if cs.PositionType == PositionAbsolute {
			absolute = append(absolute, c)
			continue
		}
		items = append(items, flexItem{h: c, style: cs})
	}

	mainC, crossC := iw, ih
	mainOwner, crossOwner := childOwnerW, childOwnerH
	mainGap, crossGap := float64(st.ColumnGap), float64(st.RowGap)
	if !isRow {
		mainC, crossC = ih, iw
		mainOwner, crossOwner = childOwnerH, childOwnerW
		mainGap, crossGap = float64(st.RowGap), float64(st.ColumnGap)
	}

	for i := range items {
		it := &items[i]
		m := it.style.Margin
		if isRow {
			it.mainMargin, it.crossMargin = float64(m.Horizontal()), float64(m.Vertical())
		} else {
			it.mainMargin, it.crossMargin = float64(m.Vertical()), float64(m.Horizontal())
		}
		it.basis = e.flexBasis(it, isRow, crossC, st.AlignItems, childOwnerW, childOwnerH)
		it.hyp = bound(it.style, isRow, it.basis, mainOwner)
	}

	lines := breakLines(items, st.Wrap, mainC, mainGap)
	lineCross := make([]float64, len(lines))
	contentMain := 0.0
	for li, line := range lines {
		e.resolveFlexibleLengths(items, line, mainC, mainGap, isRow, mainOwner)
		used := mainGap * float64(len(line)-1)
		for _, idx := range line {
			it := &items[idx]
			used += it.main + it.mainMargin
			crossStyle := it.style.Height
			if !isRow {
				crossStyle = it.style.Width
			}
			if v, ok := crossStyle.Resolve(crossOwner); ok {
				it.cross = bound(it.style, !isRow, v, crossOwner)
				it.crossFixed = true
			} else {
				var cc constraint
				if crossC.mode != MeasureUndefined {
					cc = atMost(crossC.size - it.crossMargin)
				} else {
					cc = unconstrained
				}
				if itemAlign(it.style, st.AlignItems) == AlignStretch && crossC.mode == MeasureExactly && st.Wrap == NoWrap {
					cc = exactly(crossC.size - it.crossMargin)
				}
				it.cross = e.crossSize(it, isRow, cc, childOwnerW, childOwnerH)
			}
			lineCross[li] = math.Max(lineCross[li], it.cross+it.crossMargin)
		}
		contentMain = math.Max(contentMain, used)
	}
	contentCross := crossGap * float64(len(lines)-1)
	for _, lc := range lineCross {
		contentCross += lc
	}
	if len(lines) == 0 {
		contentCross = 0
	}

	contentW, contentH := contentMain, contentCross
	if !isRow {
		contentW, contentH = contentCross, contentMain
	}
	if !widthDef {
		width = bound(st, true, contentW+pbW, ownerW)
		if cw.mode == MeasureAtMost {
			width = math.Max(math.Min(width, cw.size), pbW)
		}
	}
	if !heightDef {
		height = bound(st, false, contentH+pbH, ownerH)
		if ch.mode == MeasureAtMost {
			height = math.Max(math.Min(height, ch.size), pbH)
		}
	}

	if !perform {
		return width, height
	}

	innerW := math.Max(width-pbW, 0)
	innerH := math.Max(height-pbH, 0)
	mainInner, crossInner := innerW, innerH
	if !isRow {
		mainInner, crossInner = innerH, innerW
	}
	if len(lines) == 1 && st.Wrap == NoWrap {
		lineCross[0] = crossInner
	}

	originX := float64(st.Border.Left + st.Padding.Left)
	originY := float64(st.Border.Top + st.Padding.Top)
	reverse := st.Direction.isReverse()

	lineStart := 0.0
	if st.Wrap == WrapReverse {
		lineStart = crossInner
	}
	for li, line := range lines {
		lc := lineCross[li]
		if st.Wrap == WrapReverse {
			lineStart -= lc
		}
		used := mainGap * float64(len(line)-1)
		for _, idx := range line {
			used += items[idx].main + items[idx].mainMargin
		}
		free := mainInner - used
		pos := justifyOffset(st.JustifyContent, free, len(line))
		between := justifySpacing(st.JustifyContent, free, len(line))

		for _, idx := range line {
			it := &items[idx]
			crossSize := it.cross
			align := itemAlign(it.style, st.AlignItems)
			if align == AlignStretch && !it.crossFixed {
				crossSize = bound(it.style, !isRow, lc-it.crossMargin, crossOwnerFinal(isRow, innerW, innerH))
			}
			crossPos := lineStart + alignOffset(align, lc, crossSize+it.crossMargin)

			outer := it.main + it.mainMargin
			mainPos := pos
			if reverse {
				mainPos = mainInner - pos - outer
			}

			m := it.style.Margin
			var l Layout
			if isRow {
				l = Layout{
					Left:   originX + mainPos + float64(m.Left),
					Top:    originY + crossPos + float64(m.Top),
					Width:  it.main,
					Height: crossSize,
				}
			} else {
				l = Layout{
					Left:   originX + crossPos + float64(m.Left),
					Top:    originY + mainPos + float64(m.Top),
					Width:  crossSize,
					Height: it.main,
				}
			}
			l.Width, l.Height = e.layoutNode(it.h, exactly(l.Width), exactly(l.Height), innerW, innerH, true)
			e.nodes[it.h].layout = l

			pos += outer + mainGap + between
		}
		if st.Wrap != WrapReverse {
			lineStart += lc + crossGap
		} else {
			lineStart -= crossGap
		}
	}

	for _, c := range absolute {
		e.layoutAbsolute(c, innerW, innerH, originX, originY)
	}

	return width, height
}

func crossOwnerFinal(isRow bool, innerW, innerH float64) float64 {
	if isRow {
		return innerH
	}
	return innerW
}

// flexBasis computes the hypothetical main size before grow/shrink. Without
// an explicit basis or main size the child is measured at max-content along
// the main axis.
func (e *Engine) flexBasis(it *flexItem, isRow bool, crossC constraint, parentAlign Align, ownerW, ownerH float64) float64 {
	cs := it.style
	mainOwner, crossOwner := ownerW, ownerH
	mainStyle, crossStyle := cs.Width, cs.Height
	if !isRow {
		mainOwner, crossOwner = ownerH, ownerW
		mainStyle, crossStyle = cs.Height, cs.Width
	}
	pb := paddingBorder(cs, isRow)
	if b, ok := cs.FlexBasis.Resolve(mainOwner); ok {
		return math.Max(b, pb)
	}
	if b, ok := mainStyle.Resolve(mainOwner); ok {
		return math.Max(b, pb)
	}

	var cc constraint
	switch {
	case !crossStyle.IsAuto():
		if v, ok := crossStyle.Resolve(crossOwner); ok {
			cc = exactly(v)
		} else {
			cc = atMost(crossC.size - it.crossMargin)
		}
	case crossC.mode == MeasureExactly && itemAlign(cs, parentAlign) == AlignStretch:
		cc = exactly(crossC.size - it.crossMargin)
	case crossC.mode != MeasureUndefined:
		cc = atMost(crossC.size - it.crossMargin)
	default:
		cc = unconstrained
	}

	if isRow {
		w, _ := e.layoutNode(it.h, unconstrained, cc, ownerW, ownerH, false)
		return w
	}
	_, h := e.layoutNode(it.h, cc, unconstrained, ownerW, ownerH, false)
	return h
}

// crossSize measures an item's cross extent once its main size is fixed.
func (e *Engine) crossSize(it *flexItem, isRow bool, cc constraint, ownerW, ownerH float64) float64 {
	if isRow {
		_, h := e.layoutNode(it.h, exactly(it.main), cc, ownerW, ownerH, false)
		return h
	}
	w, _ := e.layoutNode(it.h, cc, exactly(it.main), ownerW, ownerH, false)
	return w
}

// breakLines groups item indices into flex lines.
func breakLines(items []flexItem, wrap Wrap, mainC constraint, gap float64) [][]int {
	if len(items) == 0 {
		return nil
	}
	if wrap == NoWrap || mainC.mode == MeasureUndefined {
		line := make([]int, len(items))
		for i := range items {
			line[i] = i
		}
		return [][]int{line}
	}
	var lines [][]int
	var cur []int
	used := 0.0
	for i := range items {
		outer := items[i].hyp + items[i].mainMargin
		next := used + outer
		if len(cur) > 0 {
			next += gap
		}
		if len(cur) > 0 && next > mainC.size {
			lines = append(lines, cur)
			cur = nil
			next = outer
		}
		cur = append(cur, i)
		used = next
	}
	return append(lines, cur)
}

// resolveFlexibleLengths distributes free space on one line by grow factors,
// or removes overflow weighted by shrink factor times basis.
func (e *Engine) resolveFlexibleLengths(items []flexItem, line []int, mainC constraint, gap float64, isRow bool, owner float64) {
	sum := gap * float64(len(line)-1)
	for _, idx := range line {
		items[idx].main = items[idx].hyp
		sum += items[idx].hyp + items[idx].mainMargin
	}

	target := Undefined
	switch {
	case mainC.mode == MeasureExactly:
		target = mainC.size
	case mainC.mode == MeasureAtMost && sum > mainC.size:
		target = mainC.size
	}
	if IsUndefined(target) {
		return
	}

	free := target - sum
	switch {
	case free > 0:
		total := 0.0
		for _, idx := range line {
			total += items[idx].style.FlexGrow
		}
		if total <= 0 {
			return
		}
		for _, idx := range line {
			it := &items[idx]
			if it.style.FlexGrow > 0 {
				it.main = bound(it.style, isRow, it.hyp+free*it.style.FlexGrow/total, owner)
			}
		}
	case free < 0:
		total := 0.0
		for _, idx := range line {
			total += items[idx].style.FlexShrink * items[idx].hyp
		}
		if total <= 0 {
			return
		}
		for _, idx := range line {
			it := &items[idx]
			scaled := it.style.FlexShrink * it.hyp
			if scaled > 0 {
				it.main = bound(it.style, isRow, it.hyp+free*scaled/total, owner)
			}
		}
	}
}

// layoutAbsolute sizes an out-of-flow child against the parent's content box
// and places it at the content origin offset by its own margin.
func (e *Engine) layoutAbsolute(h Handle, innerW, innerH, originX, originY float64) {
	cs := e.nodes[h].style
	cw := atMost(innerW - float64(cs.Margin.Horizontal()))
	if v, ok := cs.Width.Resolve(innerW); ok {
		cw = exactly(bound(cs, true, v, innerW))
	}
	ch := unconstrained
	if v, ok := cs.Height.Resolve(innerH); ok {
		ch = exactly(bound(cs, false, v, innerH))
	}
	w, hgt := e.layoutNode(h, cw, ch, innerW, innerH, false)
	w, hgt = e.layoutNode(h, exactly(w), exactly(hgt), innerW, innerH, true)
	e.nodes[h].layout = Layout{
		Left:   originX + float64(cs.Margin.Left),
		Top:    originY + float64(cs.Margin.Top),
		Width:  w,
		Height: hgt,
	}
}

// justifyOffset returns the leading offset for the first item on a line.
func justifyOffset(justify Justify, free float64, count int) float64 {
	if free <= 0 {
		if justify == JustifyEnd {
			return free
		}
		if justify == JustifyCenter {
			return free / 2
		}
		return 0
	}
	switch justify {
	case JustifyEnd:
		return free
	case JustifyCenter:
		return free / 2
	case JustifySpaceAround:
		if count > 0 {
			return free / float64(count*2)
		}
		return 0
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default: // JustifyStart, JustifySpaceBetween
		return 0
	}
}

// justifySpacing returns the extra space inserted between adjacent items.
func justifySpacing(justify Justify, free float64, count int) float64 {
	if free <= 0 || count <= 1 {
		return 0
	}
	switch justify {
	case JustifySpaceBetween:
		return free / float64(count-1)
	case JustifySpaceAround:
		return free / float64(count)
	case JustifySpaceEvenly:
		return free / float64(count+1)
	default:
		return 0
	}
}

// alignOffset positions an item of outer size itemSize within a line.
func alignOffset(align Align, lineSize, itemSize float64) float64 {
	switch align {
	case AlignEnd:
		return lineSize - itemSize
	case AlignCenter:
		return (lineSize - itemSize) / 2
	default: // AlignStart, AlignStretch
		return 0
	}
}
