package gemini

// analysisPrompt is the fixed instruction sent with every screenshot. The
// wording is part of the contract with the model: the viewer's birth-year
// extraction depends on the "NN년생" enumeration format, and the script
// template keys on the bracketed section markers. Do not reword casually.
const analysisPrompt = `
당신은 '대한민국 최고의 명리학 권위자'이자 '숏폼 전문 SEO 기획가'입니다.
이 쇼츠 스크린샷을 분석하여 다음 요소들을 반드시 '한국어'로 작성해줘:

1. suggestedTitle: SEO 클릭률을 극대화하는 15자 이내의 강렬한 제목.
2. hook: 시청자를 즉시 멈추게 하는 강력한 첫 문장.
3. visualStyle: 신비로운 우주 배경에 12지신 조각상이 움직이는 시각 전략.
4. pacing: 정보를 빠르게 전달하는 숏폼 리듬.
5. textOverlayStrategy: 캡컷에서 작업하기 좋은 자막 배치 전략.
6. engagementFactor: 구독과 좋아요를 유도하는 심리 기법.
7. suggestedFortuneScript:
   - [제목]: 분석된 내용을 바탕으로 한 강렬한 운세 제목 (제목부터 바로 시작).
   - [본문]: 2026년 대박나는 출생년도를 반드시 최소 25~30개 이상 상세히 나열.
   - [미션]: "화면 하단의 황금 영물을 2번 누르시면 복이 찾아옵니다."
   - [클로징]: "당신의 앞길에 만복이 깃들고 막혔던 재물운이 폭포수처럼 터지길 간절히 축원합니다. 복 많이 받으십시오. 친구에게 공유 좋아요 누르셨지요? 구독은 저에게 큰힘이 됩니다."
`

// AnalysisPrompt exposes the fixed prompt for the CLI's --show-prompt flag
// and for tests that pin the output-format contract.
func AnalysisPrompt() string {
	return analysisPrompt
}
