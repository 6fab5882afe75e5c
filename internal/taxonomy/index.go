package taxonomy

// codeIndex is the K.303 hierarchical code index: level 1 codes are 2
// digits, level 2 are 4, level 3 are 6 and level 4 are 8. A code's parent
// is its own value truncated to the next shorter width.
var codeIndex = map[string]string{
	// level 1
	"01": "מניות",
	"02": "סחורות",
	"03": "אג\"ח",
	"04": "אחר",
	"05": "מזומנים ופקדונות",
	"06": "מט\"ח",
	"07": "התפלגות אג\"ח לפי דירוגים",
	"08": "מח\"מ תיק האג\"ח",
	"09": "סימול אודות מנהל השקעות חיצוני בקרן",
	"10": "השווי הנקי של נכסי הקרן",
	// level 2
	"0101": "מניות הנסחרות בארץ",
	"0102": "מניות הנסחרות בחו\"ל",
	"0301": "אג\"ח הנסחרות בארץ",
	"0302": "אג\"ח הנסחרות בחו\"ל",
	"0501": "בש\"ח",
	"0502": "במט\"ח",
	"0601": "חשיפה כוללת למט\"ח",
	"0602": "פירוט חשיפה למטבעות הבאים",
	"0701": "אג\"ח מדורגות בדירוג השקעה",
	"0702": "אג\"ח שאינן מדורגות בדירוג השקעה או שאינן מדורגות כלל",
	"0801": "מח\"מ תיק האג\"ח",
	"0802": "מח\"מ תיק אג\"ח בארץ",
	"0803": "מח\"מ תיק אג\"ח בחו\"ל",
	// level 3
	"010101": "ת\"א- 125",
	"010102": "יתר מניות והמירים",
	"010201": "צפון אמריקה (DM)",
	"010202": "צפון אמריקה (None-DM)",
	"010203": "מרכז ודרום אמריקה (DM)",
	"010204": "מרכז ודרום אמריקה (None-DM)",
	"010205": "אפריקה (DM)",
	"010206": "אפריקה (None-DM)",
	"010207": "אירופה (DM)",
	"010208": "אירופה (None-DM)",
	"010209": "אסיה (DM)",
	"010210": "אסיה (None-DM)",
	"010211": "ישראל",
	"010212": "אוסטרליה וניו-זילנד (DM)",
	"010213": "גלובאלי/אחר (DM)",
	"010214": "גלובאלי/אחר (None-DM)",
	"030101": "אג\"ח ממשלתי",
	"030102": "אג\"ח קונצרני",
	"030103": "תעודות חוב",
	"030104": "תעודות פיקדון",
	"030201": "אג\"ח מדינה ובערבות מדינה",
	"030202": "אג\"ח קונצרני בחו\"ל",
	"030203": "אג\"ח שהונפקו על ידי יישויות אזוריות שאינן בערבות מדינה",
	"060201": "דולר של ארצות הברית של אמריקה",
	"060202": "יורו",
	"060203": "לירה שטרלינג",
	"060204": "כתר שבדי",
	"060205": "פרנק שוויצרי",
	"060206": "דולר קנדי",
	"060207": "כתר דני",
	"060208": "רנד דרום אפריקאי",
	"060209": "דולר אוסטרלי",
	"060210": "כתר נורבגי",
	"060211": "יין יפני",
	"060212": "דולר ניו זילנדי",
	"060213": "דולר הונג קונג",
	"060214": "יואן סיני",
	"060215": "דולר סנגפורי",
	"060216": "דולר טאיווני",
	"060217": "באת תאילנדי",
	"060218": "וואן דרום קוראיני",
	"060219": "רופיה הודית",
	"060220": "רובל רוסי",
	"060221": "פזו מקסיקני",
	"060222": "פורינט הונגרי",
	"060223": "ריאל ברזילאי",
	"060224": "לירה תורכית",
	"060225": "זלוטי פולני",
	"060226": "קרונה איסלנדית",
	"060227": "קרונה צ'כית (כתר צ'כי)",
	"060228": "פזו פיליפיני",
	"060229": "לירה מצרית",
	"060230": "דונג וייטנאמי",
	"070101": "גבוה (AA ומעלה)",
	"070102": "בינוני (BBB עד למטה מ- AA)",
	"070201": "נמוך (למטה מ- BBB)",
	"070202": "אג\"ח שאינן מדורגות",
	"080201": "ממשלתי שקלי",
	"080202": "ממשלתי צמוד",
	"080203": "ממשלתי צמוד מט\"ח",
	"080204": "קונצרני שקלי",
	"080205": "קונצרני צמוד",
	"080206": "קונצרני צמוד מט\"ח",
	// level 4
	"03010101": "ממשלתי צמוד מדד",
	"03010102": "ממשלתי לא צמוד",
	"03010103": "ממשלתי צמוד מט\"ח",
	"03010104": "ממשלתי אחר",
	"03010201": "קונצרני צמוד מדד",
	"03010202": "קונצרני שקלי ריבית קבועה",
	"03010203": "קונצרני שקלי ריבית משתנה",
	"03010204": "קונצרני -צמוד מט\"ח/אחר",
	"03010301": "שקלי",
	"03010302": "צמוד",
	"03010303": "מט\"ח",
	"03010401": "שקלי",
	"03010402": "צמוד",
	"03010403": "מט\"ח",
	"03020101": "צפון אמריקה (DM)",
	"03020102": "צפון אמריקה (None-DM)",
	"03020103": "מרכז ודרום אמריקה (DM)",
	"03020104": "מרכז ודרום אמריקה (None-DM)",
	"03020105": "אפריקה (DM)",
	"03020106": "אפריקה (None-DM)",
	"03020107": "אירופה (DM)",
	"03020108": "אירופה (None-DM)",
	"03020109": "אסיה (DM)",
	"03020110": "אסיה (None-DM)",
	"03020111": "ישראל",
	"03020112": "אוסטרליה וניו-זילנד (DM)",
	"03020113": "גלובאלי/אחר (DM)",
	"03020114": "גלובאלי/אחר (None-DM)",
	"03020201": "צפון אמריקה (DM)",
	"03020202": "צפון אמריקה (None-DM)",
	"03020203": "מרכז ודרום אמריקה (DM)",
	"03020204": "מרכז ודרום אמריקה (None-DM)",
	"03020205": "אפריקה (DM)",
	"03020206": "אפריקה (None-DM)",
	"03020207": "אירופה (DM)",
	"03020208": "אירופה (None-DM)",
	"03020209": "אסיה (DM)",
	"03020210": "אסיה (None-DM)",
	"03020211": "ישראל",
	"03020212": "אוסטרליה וניו-זילנד (DM)",
	"03020213": "גלובאלי/אחר (DM)",
	"03020214": "גלובאלי/אחר (None-DM)",
	"03020301": "צפון אמריקה (DM)",
	"03020302": "צפון אמריקה (None-DM)",
	"03020303": "מרכז ודרום אמריקה (DM)",
	"03020304": "מרכז ודרום אמריקה (None-DM)",
	"03020305": "אפריקה (DM)",
	"03020306": "אפריקה (None-DM)",
	"03020307": "אירופה (DM)",
	"03020308": "אירופה (None-DM)",
	"03020309": "אסיה (DM)",
	"03020310": "אסיה (None-DM)",
	"03020311": "ישראל",
	"03020312": "אוסטרליה וניו-זילנד (DM)",
	"03020313": "גלובאלי/אחר (DM)",
	"03020314": "גלובאלי/אחר (None-DM)",
}
