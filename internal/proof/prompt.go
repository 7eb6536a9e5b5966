package proof

const outputContract = "如果没有错误，error_type和description填写空字符串，checked_text与original_text保持一致。"

const workedExamples = "以下是一些示例输出：\n" +
	`{"original_text":"小明紧紧的抱住了妈妈。","error_type":"错别字","description":"“的/地”混淆，状语用“地”。","checked_text":"小明紧紧地抱住了妈妈。"}` + "\n" +
	`{"original_text":"我跑的很快。","error_type":"错别字","description":"“的/得”混淆，补语用“得”。","checked_text":"我跑得很快。"}` + "\n" +
	`{"original_text":"他己经完成了今天的任务。","error_type":"错别字","description":"“己/已”混淆。","checked_text":"他已经完成了今天的任务。"}` + "\n" +
	`{"original_text":"他滥用手中的权利，为自己谋取私利。","error_type":"错别字","description":"“权力/权利”混淆。","checked_text":"他滥用手中的权力，为自己谋取私利。"}` + "\n" +
	`{"original_text":"会议上，他一个大胆的建议。","error_type":"增删字","description":"缺少谓语“提出”。","checked_text":"会议上，他提出了一个大胆的建议。"}` + "\n" +
	`{"original_text":"我们必须全面提升各项服务指标和水平。","error_type":"修辞错误","description":"“指标”和“水平”语义重复，用词冗余。","checked_text":"我们必须全面提升各项服务水平。"}` + "\n" +
	`{"original_text":"这是一件可歌可泣的小事。","error_type":"用词不当","description":"“可歌可泣”褒贬不当，与“小事”不符。","checked_text":"这是一件令人感动的小事。"}` + "\n" +
	`{"original_text":"他昨天买了一本新书在书店里。","error_type":"语序不当","description":"地点状语“在书店里”应置于动词“买”前。","checked_text":"他昨天在书店里买了一本新书。"}` + "\n" +
	`{"original_text":"通过这次讨论，加强了对环保的认识。","error_type":"成分残缺","description":"缺少主语。","checked_text":"通过这次讨论，大家加强了对环保的认识。"}` + "\n" +
	`{"original_text":"我们要牢牢把握住这次机会，积极争取。","error_type":"搭配不当","description":"“把握住”与“争取”搭配不当。","checked_text":"我们要牢牢把握住这次机会，积极争取成功。"}` + "\n" +
	`{"original_text":"能否按期完成任务，关键在于质量。","error_type":"逻辑错误","description":"“能否”是两面性，后句不能只说一面。","checked_text":"能否按期完成任务，关键在于能否保证质量。"}` + "\n" +
	`{"original_text":"傍晚时分，公园里传来阵阵欢声笑语。","error_type":"","description":"","checked_text":"傍晚时分，公园里传来阵阵欢声笑语。"}`

// systemPrompt combines the configured proofreading instructions with the
// output contract and a block of worked examples in the exact JSON shape
// the verdict parser expects.
func systemPrompt(base string) string {
	return base + "\n\n" + outputContract + "\n\n" + workedExamples
}
