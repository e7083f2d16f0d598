package rules

import "github.com/duetdiary/duet-api/internal/domain"

// Default returns a fresh copy of the built-in rule set. Keywords cover Korean,
// the product's primary language, plus common English phrasing.
func Default() Set {
	return Set{
		Tags: []Rule{
			{Label: "일", Pattern: `회사|업무|야근|출근|퇴근|회의|\bwork\b|\bjob\b|office`},
			{Label: "가족", Pattern: `가족|부모|엄마|아빠|시댁|처가|아이|family|parents|kids?\b`},
			{Label: "건강", Pattern: `운동|병원|아프|아팠|감기|헬스|health|gym|sick`},
			{Label: "데이트", Pattern: `데이트|영화|여행|산책|맛집|\bdate\b|movie|trip|walk`},
			{Label: "돈", Pattern: `돈|월급|지출|대출|카드값|money|bills?\b|budget`},
			{Label: "대화", Pattern: `대화|얘기|이야기|통화|talked|conversation`},
			{Label: "갈등", Pattern: `싸움|싸웠|다퉜|다툼|화났|서운|fight|argu|upset`},
			{Label: "집안일", Pattern: `청소|설거지|빨래|요리|장보|chores?|cleaning|cooking`},
		},
		Interactions: []Rule{
			{
				Label:   string(domain.InteractionReassurance),
				Pattern: `괜찮아|걱정\s*마|걱정하지\s*마|곁에\s*있|내가\s*있잖아|사랑해|it'?s\s+okay|don'?t\s+worry|i'?m\s+here`,
			},
			{
				Label:   string(domain.InteractionRepair),
				Pattern: `미안|사과|화해|안아\s*줬|안아줬|sorry|apolog|make\s+up`,
			},
			{
				Label:   string(domain.InteractionConfirmation),
				Pattern: `괜찮아\?|괜찮지\?|어때\?|맞지\?|화났어\?|are\s+you\s+ok|you\s+okay\?`,
			},
			{
				Label:   string(domain.InteractionPlan),
				Pattern: `하자|약속|계획|예약했|let'?s|plan(ned)?\b|booked`,
			},
		},
		AnxietyClues: []string{
			`불안`, `걱정`, `무서`, `두려`, `초조`, `겁나`, `조마조마`,
			`anxious`, `anxiety`, `worr(y|ied)`, `afraid`, `\bfear`, `nervous`, `scared`,
		},
		RepairSignals: []string{
			`미안`, `사과`, `화해`, `농담`, `웃겼`, `웃었`, `안아`, `포옹`, `뽀뽀`, `손잡`,
			`sorry`, `apolog`, `joke`, `laugh`, `\bhug`, `kiss`,
		},
		Conflict: ConflictSet{
			Criticism: []string{
				`항상`, `맨날`, `늘\s`, `절대`, `너는\s*왜`, `넌\s*왜`, `도대체`,
				`\balways\b`, `\bnever\b`, `what'?s\s+wrong\s+with\s+you`, `why\s+do\s+you\s+always`,
			},
			Contempt: []string{
				`한심`, `어이없`, `비웃`, `무시`, `기가\s*막`, `꼴\s*보기`, `유치`,
				`pathetic`, `ridiculous`, `whatever`, `disgust`, `\beye\s*roll`,
			},
			Defensiveness: []string{
				`내\s*탓\s*아니`, `내\s*잘못\s*아니`, `나도\s*할\s*만큼`, `그건\s*네가`, `너도\s*그랬`, `어쩔\s*수\s*없`,
				`not\s+my\s+fault`, `but\s+you`, `i\s+was\s+just`, `you\s+did\s+it\s+too`,
			},
			Stonewalling: []string{
				`말하기\s*싫`, `됐어`, `그만하자`, `몰라`, `대답\s*안`, `혼자\s*있고\s*싶`, `무시했`,
				`leave\s+me\s+alone`, `i'?m\s+done`, `forget\s+it`, `silent\s+treatment`,
			},
			Positive: []string{
				`고마워`, `고맙`, `사랑`, `행복`, `좋았`, `즐거`, `설레`, `칭찬`, `응원`,
				`thank`, `\blove`, `happy`, `appreciat`, `grateful`, `proud`,
			},
		},
		LoveLanguage: []Rule{
			{Label: "words_of_affirmation", Pattern: `칭찬|고마워|사랑해|잘했어|멋져|proud\s+of|thank\s+you|i\s+love\s+you`},
			{Label: "quality_time", Pattern: `함께|같이\s*보냈|산책|대화|데이트|together|quality\s+time|\bdate\b`},
			{Label: "receiving_gifts", Pattern: `선물|꽃|편지|케이크|gift|present|flowers`},
			{Label: "acts_of_service", Pattern: `설거지|청소|요리해\s*줬|챙겨\s*줬|데리러|cooked|cleaned|picked\s+me\s+up`},
			{Label: "physical_touch", Pattern: `안아|포옹|손잡|뽀뽀|스킨십|\bhug|kiss|cuddle`},
		},
		StopWords: []string{
			"the", "and", "a", "an", "to", "of", "in", "is", "it", "i", "you", "we", "was", "for", "on", "that", "with",
			"나", "너", "그", "이", "저", "것", "수", "좀", "더", "오늘", "그리고", "그래서", "하지만", "그냥", "정말", "너무",
			"진짜", "우리", "내가", "나는", "했다", "있다", "없다",
		},
	}
}
