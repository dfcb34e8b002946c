package testutil

import "strings"

// Raw-text fixtures resembling the OCR output of one certificate per family.
// Field extraction tests and pipeline tests share these so that expectations
// stay consistent across packages.
const (
	IELTSRawText = `INTERNATIONAL ENGLISH LANGUAGE TESTING SYSTEM
Test Report Form
Candidate Name: NGUYEN VAN A
Date of Birth: 12/05/1998
Test Report Form Number: 23VN012345NGUA001
Listening 7.5
Reading 7.0
Writing 6.5
Speaking 7.0
Overall Band Score 7.0`

	TOEFLRawText = `TOEFL iBT Test Taker Score Report
Test of English as a Foreign Language
Name: HOANG MINH DUC
Date of Birth: 14/03/2002
Registration Number: 0000-1234-5678
Test Date: 22/10/2023
Reading 28
Listening 27
Speaking 24
Writing 26
Total Score 105
Educational Testing Service`

	TOEICRawText = `TEST OF ENGLISH FOR INTERNATIONAL COMMUNICATION
TOEIC Listening and Reading Test
Candidate Name: TRAN THI MAI
Date of Birth: 03/11/1999
Certificate No: IIG-2023-045678
Test Date: 10/09/2023
Listening 450
Reading 420
Total Score 870
IIG Vietnam
Date of Issue: 15/09/2023`

	VSTEPRawText = `CHUNG CHI VSTEP
Vietnamese Standardized Test of English Proficiency
Họ và tên: NGUYEN VAN MINH
Ngày sinh: 20/01/2000
Số hiệu: VSTEP-2024-00123
Nghe 8.0
Đọc 7.5
Viết 6.5
Nói 7.0
Điểm trung bình 7.5
Đại học Ngoại ngữ`

	HSKRawText = `汉语水平考试
Chinese Proficiency Test (HSK) Level 5
Name: LE THU HA
Date of Birth: 07/08/2001
Certificate No: H51234567890
听力 95
阅读 88
书写 82
总分 265
Confucius Institute Headquarters`

	JLPTRawText = `日本語能力試験
Japanese-Language Proficiency Test
Certificate of Result and Scores
Name: PHAM QUOC BAO
Date of Birth: 25/12/1997
Certificate No: N2-2023-123456
Language Knowledge 52
Reading 48
Listening 55
Total Score 155
Japan Foundation`
)

// Lines splits a raw-text fixture into lines for image rendering.
func Lines(raw string) []string {
	return strings.Split(raw, "\n")
}
