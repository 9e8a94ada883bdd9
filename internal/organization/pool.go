package organization

// CandidatesFor 指定工作地點可選的主管，依員工 id 由小到大排序。
// 工作地點為 None 時永遠是空的；目錄未載入完成時回傳 ErrCatalogNotReady。
func CandidatesFor(workplace Workplace, excludingID int64, catalog *Catalog) ([]ManagerCandidate, error) {
	candidates := []ManagerCandidate{}
	if workplace.IsNone() {
		return candidates, nil
	}
	if !catalog.Ready() {
		return candidates, ErrCatalogNotReady
	}
	for _, e := range catalog.employees {
		candidate := catalog.candidate(e)
		if IsValidManager(candidate, workplace, excludingID) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

// Candidates 所有員工與其解析後的工作地點
func (c *Catalog) Candidates() []ManagerCandidate {
	out := make([]ManagerCandidate, len(c.employees))
	for i, e := range c.employees {
		out[i] = c.candidate(e)
	}
	return out
}

// 找不到對應的超市或倉庫時視為沒有工作地點
func (c *Catalog) candidate(e Employee) ManagerCandidate {
	place, ok := c.ResolveWorkplace(e.Workplace)
	if !ok {
		place = NoWorkplace()
	}
	return ManagerCandidate{Employee: e, Place: place}
}
