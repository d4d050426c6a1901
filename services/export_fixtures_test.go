package services

import "time"

func sampleSnapshot() BillSnapshot {
	return BillSnapshot{
		BillType:  BillHoliday,
		Date:      time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC),
		NightRate: DefaultNightRate,
		Items: []LineItem{
			{ID: "a", Name: "Abdul Karim", CardNo: "418", Designation: DesignationExecutive, Amount: 800},
			{ID: "b", Name: "Rahim Uddin", CardNo: "101", Designation: DesignationSO, Amount: 800, Remarks: "half day"},
			{ID: "c", Name: "Jamal Hossain", CardNo: "205", Designation: DesignationLabour, Amount: 600},
		},
		Total: 2200,
	}
}

func sampleExportData() *BillExportData {
	data, err := BuildBillExportData(sampleSnapshot(), Letterhead{
		Name:    "SAMPLE TEXTILE MILLS LTD.",
		Address: "Gazipur, Dhaka",
	})
	if err != nil {
		panic(err)
	}
	return data
}
